package battles

import (
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
)

func newRecord(input *CreateInput, now time.Time) *Record {
	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Record{
		ID:        input.Report.BattleID,
		Report:    input.Report,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// participantNames returns the distinct normalized names of both sides
func participantNames(report *battle.Report) []string {
	var names []string
	for _, side := range []*battle.SideSummary{report.SideA, report.SideB} {
		if side == nil {
			continue
		}
		name := normalizeName(side.Name)
		if name == "" || (len(names) > 0 && names[0] == name) {
			continue
		}
		names = append(names, name)
	}
	return names
}
