package mod

import (
	"strings"
	"testing"

	"github.com/JustRunGuild/PartyBotGo/pkg/models"
)

func TestBuildBoardEmpty(t *testing.T) {
	got := BuildBoard(nil)
	if !strings.HasPrefix(got, "***__WARN LIST__***") {
		t.Errorf("board header missing: %q", got)
	}
	if !strings.Contains(got, "Nadie tiene advertencias") {
		t.Errorf("empty board text missing: %q", got)
	}
}

func TestBuildBoardListsUsersAndReasons(t *testing.T) {
	docs := []*models.WarnsDocument{
		{
			GuildID: "g1",
			UserID:  "222",
			Warns: []models.Warn{
				{ID: "w1", Reason: "spam"},
			},
		},
		{
			GuildID: "g1",
			UserID:  "111",
			Warns: []models.Warn{
				{ID: "w2", Reason: "flood"},
				{ID: "w3", Reason: "insultos"},
			},
		},
		{GuildID: "g1", UserID: "333", Warns: nil},
	}

	got := BuildBoard(docs)

	if !strings.Contains(got, "<@111> 2/3") {
		t.Errorf("user 111 count line missing:\n%s", got)
	}
	if !strings.Contains(got, "<@222> 1/3") {
		t.Errorf("user 222 count line missing:\n%s", got)
	}
	if strings.Contains(got, "<@333>") {
		t.Errorf("user without warns must not appear:\n%s", got)
	}
	if !strings.Contains(got, "1. flood\n2. insultos") {
		t.Errorf("numbered reasons missing:\n%s", got)
	}

	// Stable order: 111 before 222.
	if strings.Index(got, "<@111>") > strings.Index(got, "<@222>") {
		t.Errorf("board order not stable:\n%s", got)
	}
}

func TestBoardReflectsRemovedWarn(t *testing.T) {
	doc := &models.WarnsDocument{
		GuildID: "g1",
		UserID:  "111",
		Warns: []models.Warn{
			{ID: "w1", Reason: "flood"},
			{ID: "w2", Reason: "insultos"},
		},
	}

	remaining, removed, found := removeWarnByID(doc.Warns, "w1")
	if !found || removed.Reason != "flood" {
		t.Fatalf("removeWarnByID = %+v, %v; want the flood warn removed", removed, found)
	}
	doc.Warns = remaining

	got := BuildBoard([]*models.WarnsDocument{doc})
	if !strings.Contains(got, "<@111> 1/3") {
		t.Errorf("count line not rebuilt after removal:\n%s", got)
	}
	if strings.Contains(got, "flood") {
		t.Errorf("removed reason still on the board:\n%s", got)
	}
	if !strings.Contains(got, "1. insultos") {
		t.Errorf("remaining warn renumbered wrong:\n%s", got)
	}

	remaining, _, found = removeWarnByID(doc.Warns, "w2")
	if !found || len(remaining) != 0 {
		t.Fatalf("removeWarnByID last warn = %d left, %v", len(remaining), found)
	}
	doc.Warns = remaining

	got = BuildBoard([]*models.WarnsDocument{doc})
	if !strings.Contains(got, "Nadie tiene advertencias") {
		t.Errorf("board with no warns left must show the empty text:\n%s", got)
	}
}
