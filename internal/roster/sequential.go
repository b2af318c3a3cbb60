package roster

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities"
)

// sequential is a fixed-capacity stack. Assembly pushes the team back to
// front so the team's front sits on top.
type sequential struct {
	items [Capacity]*entities.Unit
	top   int
}

func newSequential(units []*entities.Unit) *sequential {
	s := &sequential{}
	for i := len(units) - 1; i >= 0; i-- {
		s.push(units[i])
	}
	return s
}

func (s *sequential) push(unit *entities.Unit) {
	s.items[s.top] = unit
	s.top++
}

func (s *sequential) Mode() entities.Mode {
	return entities.ModeSequential
}

func (s *sequential) Draw() (*entities.Unit, error) {
	if s.top == 0 {
		return nil, emptyRosterError()
	}
	s.top--
	unit := s.items[s.top]
	s.items[s.top] = nil
	return unit, nil
}

// ReturnMember pushes the unit back on top
func (s *sequential) ReturnMember(unit *entities.Unit) error {
	if err := validateReturn(unit, s.top); err != nil {
		return err
	}
	s.push(unit)
	return nil
}

// Settle keeps only a living round winner
func (s *sequential) Settle(unit *entities.Unit, won bool) (bool, error) {
	return settle(s, unit, won)
}

func (s *sequential) Len() int {
	return s.top
}

func (s *sequential) IsEmpty() bool {
	return s.top == 0
}

func (s *sequential) Members() []*entities.Unit {
	out := make([]*entities.Unit, 0, s.top)
	for i := s.top - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	return out
}
