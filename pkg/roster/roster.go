// Package roster implements parsing, rendering and slot transitions for
// party sign-up rosters. It is pure: no Discord or database access, so the
// whole sign-up state machine can be tested without a gateway connection.
package roster

import (
	"fmt"
	"regexp"
	"strings"
)

// Sentinel is the literal marker for an open generic slot, one whose role is
// chosen by the member at sign-up time.
const Sentinel = "X"

var (
	slotLineRegex    = regexp.MustCompile(`^(\d+)\.\s*(.*?)\s*:\s*(.*)$`)
	partyHeaderRegex = regexp.MustCompile(`(?i)^\*\*\s*(party\s+\d+)\s*\*\*`)
	mentionRegex     = regexp.MustCompile(`<@!?\d+>\s*`)
)

// Slot is one numbered line of a roster. Filler is everything after the
// colon: the sentinel, a fixed role name, or "<rol> <@id>" once occupied.
type Slot struct {
	Number int
	Label  string
	Filler string

	raw   string // verbatim source line, valid while dirty is false
	dirty bool
}

// Occupied reports whether any user mention is present in the slot.
func (s *Slot) Occupied() bool {
	return strings.Contains(s.Filler, "<@")
}

// OccupiedBy reports whether the slot is held by the given user.
func (s *Slot) OccupiedBy(userID string) bool {
	return strings.Contains(s.Filler, Mention(userID))
}

// IsSentinel reports whether the filler is exactly the open-slot marker.
// The comparison is case-insensitive: templates in the wild carry both
// "X" and "x".
func IsSentinel(filler string) bool {
	return strings.EqualFold(strings.TrimSpace(filler), Sentinel)
}

// Mention returns the chat mention for a user id.
func Mention(userID string) string {
	return "<@" + userID + ">"
}

// lineRef is one source line of the roster body. num > 0 means the line
// renders from the slot with that number; otherwise raw is reproduced
// verbatim (titles, separators, headers).
type lineRef struct {
	raw string
	num int
}

// sectionInfo groups slots under a "**Party N**" header for the embed view.
// Contents are immutable after parsing, so clones may share them.
type sectionInfo struct {
	title string
	desc  []string
	nums  []int
}

// Roster is an ordered sequence of slots plus the decorative text around
// them. Lookups are by slot number; order follows the source body.
type Roster struct {
	lines    []lineRef
	slots    map[int]*Slot
	order    []int
	sections []sectionInfo
}

// Parse converts a roster body into a Roster. Lines that do not match the
// "<número>. <etiqueta>: <valor>" pattern are kept as decorative text. A
// duplicated slot number is also treated as decorative; the first occurrence
// wins. Callers must treat a roster with zero slots as an invalid template.
func Parse(body string) *Roster {
	r := &Roster{slots: make(map[int]*Slot)}

	for _, rawLine := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(rawLine)

		if header := partyHeaderRegex.FindStringSubmatch(trimmed); header != nil {
			r.sections = append(r.sections, sectionInfo{title: strings.TrimSpace(header[1])})
			r.lines = append(r.lines, lineRef{raw: rawLine})
			continue
		}

		m := slotLineRegex.FindStringSubmatch(trimmed)
		if m == nil {
			if trimmed != "" && len(r.sections) > 0 {
				last := &r.sections[len(r.sections)-1]
				last.desc = append(last.desc, trimmed)
			}
			r.lines = append(r.lines, lineRef{raw: rawLine})
			continue
		}

		num := atoi(m[1])
		if _, dup := r.slots[num]; dup || num <= 0 {
			r.lines = append(r.lines, lineRef{raw: rawLine})
			continue
		}

		slot := &Slot{
			Number: num,
			Label:  m[2],
			Filler: strings.TrimSpace(m[3]),
			raw:    rawLine,
		}
		r.slots[num] = slot
		r.order = append(r.order, num)
		r.lines = append(r.lines, lineRef{raw: rawLine, num: num})

		if len(r.sections) > 0 {
			last := &r.sections[len(r.sections)-1]
			last.nums = append(last.nums, num)
		}
	}

	return r
}

// atoi parses a digits-only string produced by slotLineRegex.
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// Body renders the roster back to text. Untouched lines are reproduced
// byte for byte; mutated slots render in canonical "N. Label: Filler" form.
func (r *Roster) Body() string {
	var b strings.Builder
	for i, ln := range r.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if ln.num > 0 {
			if s := r.slots[ln.num]; s.dirty {
				fmt.Fprintf(&b, "%d. %s: %s", s.Number, s.Label, s.Filler)
				continue
			}
		}
		b.WriteString(ln.raw)
	}
	return b.String()
}

// Slot returns the slot with the given number.
func (r *Roster) Slot(n int) (*Slot, bool) {
	s, ok := r.slots[n]
	return s, ok
}

// Slots returns all slots in source order.
func (r *Roster) Slots() []*Slot {
	out := make([]*Slot, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.slots[n])
	}
	return out
}

// SlotCount returns the number of parsed slots.
func (r *Roster) SlotCount() int {
	return len(r.order)
}

// SlotOf returns the slot currently held by the given user, if any.
func (r *Roster) SlotOf(userID string) (*Slot, bool) {
	for _, n := range r.order {
		if r.slots[n].OccupiedBy(userID) {
			return r.slots[n], true
		}
	}
	return nil, false
}

// Clone returns a deep copy safe to mutate without affecting the receiver.
func (r *Roster) Clone() *Roster {
	c := &Roster{
		lines:    r.lines,
		order:    r.order,
		sections: r.sections,
		slots:    make(map[int]*Slot, len(r.slots)),
	}
	for n, s := range r.slots {
		cp := *s
		c.slots[n] = &cp
	}
	return c
}

// SetFiller replaces the filler of slot n and marks it for canonical
// rendering.
func (r *Roster) SetFiller(n int, filler string) {
	if s, ok := r.slots[n]; ok {
		s.Filler = filler
		s.dirty = true
	}
}

// Restore resets slot n to its pristine state. When the pristine roster
// carries the same slot the source line is copied verbatim; otherwise just
// the occupant mention is stripped, falling back to the sentinel when
// nothing remains.
func (r *Roster) Restore(pristine *Roster, n int) {
	s, ok := r.slots[n]
	if !ok {
		return
	}
	if pristine != nil {
		if ps, ok := pristine.Slot(n); ok {
			s.Filler = ps.Filler
			s.raw = ps.raw
			s.dirty = ps.dirty
			return
		}
	}
	stripped := strings.TrimSpace(mentionRegex.ReplaceAllString(s.Filler, ""))
	if stripped == "" {
		stripped = Sentinel
	}
	s.Filler = stripped
	s.dirty = true
}

// Section is a rendered view of one "**Party N**" block.
type Section struct {
	Title       string
	Description string
	Slots       []*Slot
}

// Sections returns the party blocks of the roster in source order. Rosters
// without party headers return no sections; callers fall back to a flat view.
func (r *Roster) Sections() []Section {
	out := make([]Section, 0, len(r.sections))
	for _, si := range r.sections {
		sec := Section{
			Title:       si.title,
			Description: strings.Join(si.desc, "\n"),
		}
		for _, n := range si.nums {
			sec.Slots = append(sec.Slots, r.slots[n])
		}
		out = append(out, sec)
	}
	return out
}
