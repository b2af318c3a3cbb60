package roster

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities"
)

// rotating is a fixed-capacity circular queue in team order
type rotating struct {
	items [Capacity]*entities.Unit
	front int
	count int
}

func newRotating(units []*entities.Unit) *rotating {
	r := &rotating{}
	for _, u := range units {
		r.enqueue(u)
	}
	return r
}

func (r *rotating) enqueue(unit *entities.Unit) {
	r.items[(r.front+r.count)%Capacity] = unit
	r.count++
}

func (r *rotating) Mode() entities.Mode {
	return entities.ModeRotating
}

func (r *rotating) Draw() (*entities.Unit, error) {
	if r.count == 0 {
		return nil, emptyRosterError()
	}
	unit := r.items[r.front]
	r.items[r.front] = nil
	r.front = (r.front + 1) % Capacity
	r.count--
	return unit, nil
}

// ReturnMember enqueues the unit at the back
func (r *rotating) ReturnMember(unit *entities.Unit) error {
	if err := validateReturn(unit, r.count); err != nil {
		return err
	}
	r.enqueue(unit)
	return nil
}

// Settle sends every living unit to the back, winner or not
func (r *rotating) Settle(unit *entities.Unit, _ bool) (bool, error) {
	return settle(r, unit, true)
}

func (r *rotating) Len() int {
	return r.count
}

func (r *rotating) IsEmpty() bool {
	return r.count == 0
}

func (r *rotating) Members() []*entities.Unit {
	out := make([]*entities.Unit, 0, r.count)
	for i := 0; i < r.count; i++ {
		out = append(out, r.items[(r.front+i)%Capacity])
	}
	return out
}
