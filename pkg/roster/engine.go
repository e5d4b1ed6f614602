// Slot transition engine. Operations clone the live roster and return the
// mutated copy inside an Outcome; nothing is committed until the caller
// persists that copy, so an abandoned role prompt rolls back for free.
package roster

import (
	"strconv"
	"strings"
)

// Code classifies the result of a slot transition. Rejections are ordinary
// results, not errors: they become short user-visible replies.
type Code int

const (
	// OK means the transition was applied to the returned roster copy.
	OK Code = iota
	// NeedsRole means the target slot is generic and a role string must be
	// collected before calling ClaimWithRole. Nothing was mutated.
	NeedsRole
	// SlotNotFound means no slot with that number exists in the roster.
	SlotNotFound
	// SlotOccupied means another user already holds the target slot.
	SlotOccupied
	// NotSignedUp means the user holds no slot to release.
	NotSignedUp
)

// Outcome is the result of one engine operation. Roster is the updated copy
// and is only non-nil when Code == OK.
type Outcome struct {
	Code    Code
	Slot    int    // target (or released) slot number
	Vacated int    // previous slot freed within the same claim, 0 if none
	Role    string // role chosen for a generic slot
	Roster  *Roster
}

// Engine applies sign-up transitions. MaxSlot bounds the slot numbers
// accepted from free-form thread messages; it is configuration, not a rule
// of the roster format itself.
type Engine struct {
	MaxSlot int
}

// DefaultMaxSlot is the upper bound for slot numbers typed in a thread.
const DefaultMaxSlot = 100

// NewEngine creates an engine with the given bound, or DefaultMaxSlot when
// maxSlot is not positive.
func NewEngine(maxSlot int) *Engine {
	if maxSlot <= 0 {
		maxSlot = DefaultMaxSlot
	}
	return &Engine{MaxSlot: maxSlot}
}

// ParseSlotNumber interprets a raw thread message as a slot claim. Anything
// non-numeric or out of the 1..MaxSlot range is not a command and is
// reported as not ok.
func (e *Engine) ParseSlotNumber(content string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil || n < 1 || n > e.MaxSlot {
		return 0, false
	}
	return n, true
}

// Claim signs the user into slot n. If the user already holds another slot
// it is restored to pristine first, inside the same transition, so the user
// never holds two slots at once. A generic target slot yields NeedsRole; the
// caller collects the role and retries with ClaimWithRole.
func (e *Engine) Claim(live, pristine *Roster, userID string, n int) Outcome {
	return e.claim(live, pristine, userID, n, "", false)
}

// ClaimWithRole finishes a claim on a generic slot once the role string has
// been collected. The filler becomes "<rol> <mención>".
func (e *Engine) ClaimWithRole(live, pristine *Roster, userID string, n int, role string) Outcome {
	return e.claim(live, pristine, userID, n, role, true)
}

func (e *Engine) claim(live, pristine *Roster, userID string, n int, role string, haveRole bool) Outcome {
	if _, ok := live.Slot(n); !ok {
		return Outcome{Code: SlotNotFound, Slot: n}
	}

	next := live.Clone()

	// Vacate any previous slot before checking the target, so the user
	// can move onto their own slot or swap slots in one action.
	vacated := 0
	if prev, ok := next.SlotOf(userID); ok {
		vacated = prev.Number
		next.Restore(pristine, prev.Number)
	}

	target, _ := next.Slot(n)
	if target.Occupied() {
		return Outcome{Code: SlotOccupied, Slot: n, Vacated: 0}
	}

	pristineFiller := Sentinel
	if pristine != nil {
		if ps, ok := pristine.Slot(n); ok {
			pristineFiller = ps.Filler
		}
	}

	if IsSentinel(pristineFiller) {
		if !haveRole {
			return Outcome{Code: NeedsRole, Slot: n}
		}
		role = strings.TrimSpace(role)
		next.SetFiller(n, role+" "+Mention(userID))
		return Outcome{Code: OK, Slot: n, Vacated: vacated, Role: role, Roster: next}
	}

	// Fixed-label slot: append the mention to whatever value is there.
	if filler := strings.TrimSpace(target.Filler); filler != "" {
		next.SetFiller(n, filler+" "+Mention(userID))
	} else {
		next.SetFiller(n, Mention(userID))
	}
	return Outcome{Code: OK, Slot: n, Vacated: vacated, Roster: next}
}

// Release vacates the slot held by the user, restoring its pristine line.
func (e *Engine) Release(live, pristine *Roster, userID string) Outcome {
	held, ok := live.SlotOf(userID)
	if !ok {
		return Outcome{Code: NotSignedUp}
	}
	next := live.Clone()
	next.Restore(pristine, held.Number)
	return Outcome{Code: OK, Slot: held.Number, Roster: next}
}
