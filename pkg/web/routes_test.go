package web

import (
	"testing"

	"github.com/JustRunGuild/PartyBotGo/pkg/models"
	"github.com/gin-gonic/gin"
)

func TestPartySummarySectioned(t *testing.T) {
	p := &models.LiveParty{
		GuildID:  "g1",
		ThreadID: "t1",
		CurrentBody: "**Party 1**\n" +
			"1. Tank: <@111>\n" +
			"2. Healer: X\n" +
			"**Party 2**\n" +
			"3. DPS: X\n",
	}

	got := partySummary(p)

	if got["slots"] != 3 || got["filled"] != 1 {
		t.Errorf("summary totals = %v/%v, want 1/3", got["filled"], got["slots"])
	}

	secs, ok := got["sections"].([]gin.H)
	if !ok {
		t.Fatalf("sections missing or wrong type: %T", got["sections"])
	}
	if len(secs) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(secs))
	}
	if secs[0]["title"] != "Party 1" || secs[0]["filled"] != 1 || secs[0]["total"] != 2 {
		t.Errorf("section 1 = %v", secs[0])
	}
	if secs[1]["title"] != "Party 2" || secs[1]["filled"] != 0 || secs[1]["total"] != 1 {
		t.Errorf("section 2 = %v", secs[1])
	}
}

func TestPartySummaryFlatRoster(t *testing.T) {
	p := &models.LiveParty{
		GuildID:     "g1",
		ThreadID:    "t2",
		CurrentBody: "1. Tank: X\n2. Healer: X",
	}

	got := partySummary(p)

	if got["slots"] != 2 || got["filled"] != 0 {
		t.Errorf("summary totals = %v/%v, want 0/2", got["filled"], got["slots"])
	}
	if _, present := got["sections"]; present {
		t.Error("flat roster must not carry a sections breakdown")
	}
}
