package roster

import (
	"sort"

	"github.com/KirkDiggler/rpg-battle/internal/entities"
)

// priority keeps units ascending by level. Equal levels keep the order in
// which units first entered the roster.
type priority struct {
	items   []*entities.Unit
	seq     map[*entities.Unit]int
	nextSeq int
}

func newPriority(units []*entities.Unit) *priority {
	p := &priority{
		items: make([]*entities.Unit, 0, Capacity),
		seq:   make(map[*entities.Unit]int, Capacity),
	}
	for _, u := range units {
		p.insert(u)
	}
	return p
}

func (p *priority) sequence(unit *entities.Unit) int {
	if n, ok := p.seq[unit]; ok {
		return n
	}
	n := p.nextSeq
	p.seq[unit] = n
	p.nextSeq++
	return n
}

func (p *priority) less(a, b *entities.Unit) bool {
	if a.Level != b.Level {
		return a.Level < b.Level
	}
	return p.sequence(a) < p.sequence(b)
}

func (p *priority) insert(unit *entities.Unit) {
	p.sequence(unit)
	i := sort.Search(len(p.items), func(i int) bool {
		return p.less(unit, p.items[i])
	})
	p.items = append(p.items, nil)
	copy(p.items[i+1:], p.items[i:])
	p.items[i] = unit
}

func (p *priority) Mode() entities.Mode {
	return entities.ModePriorityByLevel
}

func (p *priority) Draw() (*entities.Unit, error) {
	if len(p.items) == 0 {
		return nil, emptyRosterError()
	}
	unit := p.items[0]
	p.items[0] = nil
	p.items = p.items[1:]
	return unit, nil
}

// ReturnMember re-sorts the unit in by its current level
func (p *priority) ReturnMember(unit *entities.Unit) error {
	if err := validateReturn(unit, len(p.items)); err != nil {
		return err
	}
	p.insert(unit)
	return nil
}

// Settle re-sorts every living unit back in
func (p *priority) Settle(unit *entities.Unit, _ bool) (bool, error) {
	return settle(p, unit, true)
}

func (p *priority) Len() int {
	return len(p.items)
}

func (p *priority) IsEmpty() bool {
	return len(p.items) == 0
}

func (p *priority) Members() []*entities.Unit {
	out := make([]*entities.Unit, len(p.items))
	copy(out, p.items)
	return out
}
