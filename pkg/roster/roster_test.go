package roster

import (
	"strings"
	"testing"
)

const sampleBody = "**Party 1**\n" +
	"Salida 22:00 UTC\n" +
	"1. Tank: X\n" +
	"2. Healer: X\n" +
	"3. Arcano:\n" +
	"----\n" +
	"**Party 2**\n" +
	"4. Martillo: X\n" +
	"5. Scout: Pepe"

func TestParseSlotCount(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"sample", sampleBody, 5},
		{"empty", "", 0},
		{"only decoration", "**Party 1**\nhola\n----", 0},
		{"no headers", "1. Tank: X\n2. Healer: X", 2},
		{"duplicate number kept once", "1. Tank: X\n1. Healer: X", 1},
		{"numbered line without colon ignored", "1. Tank\n2. Healer: X", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.body)
			if got := r.SlotCount(); got != tt.want {
				t.Errorf("SlotCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParsePreservesOrderAndClassification(t *testing.T) {
	r := Parse(sampleBody)

	wantOrder := []int{1, 2, 3, 4, 5}
	slots := r.Slots()
	if len(slots) != len(wantOrder) {
		t.Fatalf("Slots() length = %d, want %d", len(slots), len(wantOrder))
	}
	for i, s := range slots {
		if s.Number != wantOrder[i] {
			t.Errorf("slot %d number = %d, want %d", i, s.Number, wantOrder[i])
		}
	}

	generic := map[int]bool{1: true, 2: true, 4: true}
	for _, s := range slots {
		if got := IsSentinel(s.Filler); got != generic[s.Number] {
			t.Errorf("slot %d generic = %v, want %v", s.Number, got, generic[s.Number])
		}
	}
}

func TestParseOrderFollowsFileNotNumbers(t *testing.T) {
	r := Parse("7. Tank: X\n2. Healer: X\n5. Scout: X")

	var got []int
	for _, s := range r.Slots() {
		got = append(got, s.Number)
	}
	want := []int{7, 2, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot order = %v, want %v", got, want)
		}
	}
}

func TestBodyRoundTrip(t *testing.T) {
	bodies := []string{
		sampleBody,
		"1. Tank: X",
		"1.   Tank  :   X\n\ntexto decorativo",
	}
	for _, body := range bodies {
		if got := Parse(body).Body(); got != body {
			t.Errorf("Body() round trip mismatch:\ngot  %q\nwant %q", got, body)
		}
	}
}

func TestSections(t *testing.T) {
	r := Parse(sampleBody)
	secs := r.Sections()

	if len(secs) != 2 {
		t.Fatalf("Sections() length = %d, want 2", len(secs))
	}
	if !strings.EqualFold(secs[0].Title, "Party 1") {
		t.Errorf("section 0 title = %q", secs[0].Title)
	}
	if len(secs[0].Slots) != 3 || len(secs[1].Slots) != 2 {
		t.Errorf("section slot counts = %d/%d, want 3/2", len(secs[0].Slots), len(secs[1].Slots))
	}
	if !strings.Contains(secs[0].Description, "Salida 22:00 UTC") {
		t.Errorf("section 0 description = %q", secs[0].Description)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := Parse("1. Tank: X")
	c := r.Clone()
	c.SetFiller(1, "Guardian <@42>")

	s, _ := r.Slot(1)
	if s.Filler != "X" {
		t.Errorf("original mutated through clone: filler = %q", s.Filler)
	}
	cs, _ := c.Slot(1)
	if cs.Filler != "Guardian <@42>" {
		t.Errorf("clone filler = %q", cs.Filler)
	}
}

func TestRestoreWithoutPristineLineStripsMention(t *testing.T) {
	live := Parse("9. Healer: Sacro <@42>")
	live.Restore(Parse("1. Tank: X"), 9)

	s, _ := live.Slot(9)
	if s.Filler != "Sacro" {
		t.Errorf("filler = %q, want %q", s.Filler, "Sacro")
	}

	live = Parse("9. Healer: <@42>")
	live.Restore(nil, 9)
	s, _ = live.Slot(9)
	if s.Filler != Sentinel {
		t.Errorf("filler = %q, want sentinel", s.Filler)
	}
}

func TestSlotOf(t *testing.T) {
	r := Parse("1. Tank: Guardian <@42>\n2. Healer: X")

	if s, ok := r.SlotOf("42"); !ok || s.Number != 1 {
		t.Errorf("SlotOf(42) = %v, %v", s, ok)
	}
	if _, ok := r.SlotOf("99"); ok {
		t.Error("SlotOf(99) should not find a slot")
	}
}
