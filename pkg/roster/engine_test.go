package roster

import "testing"

func newFixture() (live, pristine *Roster, e *Engine) {
	body := "1. Tank: X\n2. Healer: X"
	return Parse(body), Parse(body), NewEngine(0)
}

func TestClaimGenericSlotWithRole(t *testing.T) {
	live, pristine, e := newFixture()

	out := e.Claim(live, pristine, "alice", 1)
	if out.Code != NeedsRole {
		t.Fatalf("Claim on generic slot = %v, want NeedsRole", out.Code)
	}
	if out.Roster != nil {
		t.Fatal("NeedsRole must not carry a mutated roster")
	}

	out = e.ClaimWithRole(live, pristine, "alice", 1, "Guardian")
	if out.Code != OK {
		t.Fatalf("ClaimWithRole = %v, want OK", out.Code)
	}
	s, _ := out.Roster.Slot(1)
	if s.Filler != "Guardian <@alice>" {
		t.Errorf("slot 1 filler = %q, want %q", s.Filler, "Guardian <@alice>")
	}
}

func TestClaimThenReleaseRestoresPristineBody(t *testing.T) {
	live, pristine, e := newFixture()

	out := e.ClaimWithRole(live, pristine, "alice", 1, "Guardian")
	if out.Code != OK {
		t.Fatalf("claim = %v", out.Code)
	}

	out = e.Release(out.Roster, pristine, "alice")
	if out.Code != OK || out.Slot != 1 {
		t.Fatalf("Release = %+v", out)
	}
	if got, want := out.Roster.Body(), pristine.Body(); got != want {
		t.Errorf("round trip body:\ngot  %q\nwant %q", got, want)
	}
}

func TestClaimFixedLabelSlotAppendsMention(t *testing.T) {
	body := "2. Healer:"
	live, pristine := Parse(body), Parse(body)
	e := NewEngine(0)

	out := e.Claim(live, pristine, "bob", 2)
	if out.Code != OK {
		t.Fatalf("Claim on fixed-label slot = %v, want OK (no role prompt)", out.Code)
	}
	s, _ := out.Roster.Slot(2)
	if s.Filler != "<@bob>" {
		t.Errorf("slot 2 filler = %q, want %q", s.Filler, "<@bob>")
	}

	// A descriptive filler keeps its text in front of the mention.
	live, pristine = Parse("3. Scout: Montura rápida"), Parse("3. Scout: Montura rápida")
	out = e.Claim(live, pristine, "bob", 3)
	if out.Code != OK {
		t.Fatalf("Claim = %v", out.Code)
	}
	s, _ = out.Roster.Slot(3)
	if s.Filler != "Montura rápida <@bob>" {
		t.Errorf("slot 3 filler = %q", s.Filler)
	}
}

func TestClaimOccupiedSlotRejected(t *testing.T) {
	live, pristine, e := newFixture()

	first := e.ClaimWithRole(live, pristine, "alice", 1, "Guardian")
	bodyAfterAlice := first.Roster.Body()

	out := e.Claim(first.Roster, pristine, "bob", 1)
	if out.Code != SlotOccupied {
		t.Fatalf("second claim = %v, want SlotOccupied", out.Code)
	}
	if first.Roster.Body() != bodyAfterAlice {
		t.Error("rejected claim mutated the roster")
	}
}

func TestClaimUnknownSlotRejected(t *testing.T) {
	live, pristine, e := newFixture()

	out := e.Claim(live, pristine, "alice", 40)
	if out.Code != SlotNotFound {
		t.Errorf("Claim(40) = %v, want SlotNotFound", out.Code)
	}
}

func TestUserNeverHoldsTwoSlots(t *testing.T) {
	live, pristine, e := newFixture()

	out := e.ClaimWithRole(live, pristine, "alice", 1, "Guardian")
	out = e.ClaimWithRole(out.Roster, pristine, "alice", 2, "Sacro")
	if out.Code != OK {
		t.Fatalf("move to slot 2 = %v", out.Code)
	}
	if out.Vacated != 1 {
		t.Errorf("Vacated = %d, want 1", out.Vacated)
	}

	held := 0
	for _, s := range out.Roster.Slots() {
		if s.OccupiedBy("alice") {
			held++
		}
	}
	if held != 1 {
		t.Errorf("alice holds %d slots, want 1", held)
	}

	s, _ := out.Roster.Slot(1)
	if s.Filler != "X" {
		t.Errorf("vacated slot filler = %q, want pristine sentinel", s.Filler)
	}
}

func TestReleaseWithoutSignUp(t *testing.T) {
	live, pristine, e := newFixture()

	out := e.Release(live, pristine, "alice")
	if out.Code != NotSignedUp {
		t.Errorf("Release = %v, want NotSignedUp", out.Code)
	}
}

func TestAbandonedRolePromptLeavesRosterUnchanged(t *testing.T) {
	live, pristine, e := newFixture()
	before := live.Body()

	// NeedsRole hands nothing back to commit: a prompt timeout simply never
	// calls ClaimWithRole, so the live roster must be untouched.
	out := e.Claim(live, pristine, "alice", 2)
	if out.Code != NeedsRole {
		t.Fatalf("Claim = %v, want NeedsRole", out.Code)
	}
	if live.Body() != before {
		t.Error("live roster mutated by an uncommitted claim")
	}
}

func TestParseSlotNumber(t *testing.T) {
	e := NewEngine(50)

	tests := []struct {
		in string
		n  int
		ok bool
	}{
		{"3", 3, true},
		{" 50 ", 50, true},
		{"51", 0, false},
		{"0", 0, false},
		{"-2", 0, false},
		{"12abc", 0, false},
		{"desapuntar", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		n, ok := e.ParseSlotNumber(tt.in)
		if n != tt.n || ok != tt.ok {
			t.Errorf("ParseSlotNumber(%q) = %d, %v; want %d, %v", tt.in, n, ok, tt.n, tt.ok)
		}
	}
}
