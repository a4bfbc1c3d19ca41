package engine

import "github.com/nasifowls01-ui/opb/internal/duel"

// FirstAlive returns the index of the lowest-index unit still standing, or
// len(units) when every unit is down. This is the single alive-pointer rule:
// call it after every health mutation and at side construction.
func FirstAlive(units []duel.UnitSnapshot) int {
	for i := range units {
		if units[i].Alive() {
			return i
		}
	}
	return len(units)
}

// Normalize repoints the side's active index at the first living unit.
func Normalize(s *duel.Side) {
	s.ActiveIndex = FirstAlive(s.Units)
}

// Defeated reports whether the side has no living units left.
func Defeated(s *duel.Side) bool {
	return FirstAlive(s.Units) == len(s.Units)
}
