package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	enginebattle "github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-battle/internal/roster"
	"github.com/KirkDiggler/rpg-battle/internal/services/assembly"
)

var (
	simMode     string
	simNameA    string
	simNameB    string
	simSpeciesA []string
	simSpeciesB []string
	simTeamSize int
	simBattles  int
	simJSON     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run battles locally and print the reports",
	Long: `Run one or more battles in memory. Teams are the given species, topped up
with random species picks to --team-size. Registries carry over between the
battles of one run.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simMode, "mode", "set", "battle mode: set, rotate or optimise")
	simulateCmd.Flags().StringVar(&simNameA, "a", "Red", "name of participant A")
	simulateCmd.Flags().StringVar(&simNameB, "b", "Blue", "name of participant B")
	simulateCmd.Flags().StringSliceVar(&simSpeciesA, "species-a", nil, "species for participant A")
	simulateCmd.Flags().StringSliceVar(&simSpeciesB, "species-b", nil, "species for participant B")
	simulateCmd.Flags().IntVar(&simTeamSize, "team-size", roster.Capacity, "units per team")
	simulateCmd.Flags().IntVar(&simBattles, "battles", 1, "number of battles to run")
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "print reports as JSON")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if simBattles < 1 {
		return fmt.Errorf("--battles must be at least 1")
	}

	ctx := context.Background()
	d, err := buildDeps(ctx, &depsOptions{})
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}
	defer d.Close()

	for i := 0; i < simBattles; i++ {
		resp, err := d.BattleService.CommenceBattle(ctx, &battle.CommenceBattleInput{
			Mode:  simMode,
			SideA: &battle.SideInput{Name: simNameA, Team: team(simSpeciesA)},
			SideB: &battle.SideInput{Name: simNameB, Team: team(simSpeciesB)},
		})
		if err != nil {
			return fmt.Errorf("battle %d failed: %w", i+1, err)
		}

		if simJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp.Report); err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			continue
		}
		printReport(resp.Report)
	}

	return nil
}

func team(species []string) *assembly.BuildTeamInput {
	random := simTeamSize - len(species)
	if random < 0 {
		random = 0
	}
	return &assembly.BuildTeamInput{
		Species:     species,
		RandomCount: random,
	}
}

func printReport(r *enginebattle.Report) {
	fmt.Printf("⚔️  Battle %s (%s): %s vs %s\n", r.BattleID, r.Mode, r.SideA.Name, r.SideB.Name)
	for _, round := range r.Rounds {
		res := round.Result
		fmt.Printf("  Round %2d: %-12s %3d hp | %-12s %3d hp  %s\n",
			round.Number,
			round.UnitA.Name, round.UnitA.Health,
			round.UnitB.Name, round.UnitB.Health,
			res.Verdict)
	}

	if winner := r.Winner(); winner != "" {
		fmt.Printf("🏆 %s wins after %d rounds\n", winner, len(r.Rounds))
	} else {
		fmt.Printf("🤝 Draw after %d rounds\n", len(r.Rounds))
	}
	for _, side := range []*enginebattle.SideSummary{r.SideA, r.SideB} {
		fmt.Printf("  %s: %d/%d units left, registry %v (%.2f)\n",
			side.Name, len(side.Remaining), side.StartingUnits, side.Registry, side.CompletionRatio)
	}
	fmt.Println()
}
