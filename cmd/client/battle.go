package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
	"github.com/KirkDiggler/rpg-battle/internal/services/assembly"
)

var (
	mode      string
	speciesA  []string
	speciesB  []string
	randomA   int
	randomB   int
	roundFile string
	listLimit int
)

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Run and inspect battles",
}

var battleCommenceCmd = &cobra.Command{
	Use:   "commence <participant_a> <participant_b>",
	Short: "Run a battle between two participants",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		req := &v1alpha1.CommenceBattleRequest{
			Mode: mode,
			SideA: &v1alpha1.SideRequest{
				Name: args[0],
				Team: &assembly.BuildTeamInput{Species: speciesA, RandomCount: randomA},
			},
			SideB: &v1alpha1.SideRequest{
				Name: args[1],
				Team: &assembly.BuildTeamInput{Species: speciesB, RandomCount: randomB},
			},
		}

		return withClient(func(ctx context.Context, client *v1alpha1.Client) error {
			resp, err := client.CommenceBattle(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to commence battle: %w", err)
			}

			r := resp.Report
			if winner := r.Winner(); winner != "" {
				fmt.Printf("🏆 %s wins battle %s after %d rounds\n", winner, r.BattleID, len(r.Rounds))
			} else {
				fmt.Printf("🤝 Battle %s is a draw after %d rounds\n", r.BattleID, len(r.Rounds))
			}
			fmt.Printf("Report kept until %s\n", resp.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		})
	},
}

var battleGetCmd = &cobra.Command{
	Use:   "get <battle_id>",
	Short: "Print a stored battle report",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, client *v1alpha1.Client) error {
			resp, err := client.GetBattle(ctx, &v1alpha1.GetBattleRequest{BattleID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to get battle: %w", err)
			}
			return printJSON(resp)
		})
	},
}

var battleListCmd = &cobra.Command{
	Use:   "list <participant>",
	Short: "List a participant's recent battles",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, client *v1alpha1.Client) error {
			resp, err := client.ListBattles(ctx, &v1alpha1.ListBattlesRequest{
				ParticipantName: args[0],
				Limit:           listLimit,
			})
			if err != nil {
				return fmt.Errorf("failed to list battles: %w", err)
			}

			for _, b := range resp.Battles {
				winner := b.Winner
				if winner == "" {
					winner = "draw"
				}
				fmt.Printf("%s  %-8s  %-8s  %3d rounds  %s\n",
					b.CreatedAt.Format("2006-01-02 15:04"), b.Mode, winner, b.Rounds, b.BattleID)
			}
			return nil
		})
	},
}

var roundCmd = &cobra.Command{
	Use:   "round",
	Short: "Resolve a single round described in a YAML file",
	Long: `Resolve a single round. The file holds the request, for example:

side_a:
  participant: Ash
  unit: {name: Spark, category: electric, health: 10, attack: 6, defence: 2, speed: 8}
side_b:
  unit: {name: Drip, category: water, health: 12, attack: 4, defence: 3, speed: 5}`,
	RunE: func(_ *cobra.Command, _ []string) error {
		b, err := os.ReadFile(roundFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", roundFile, err)
		}

		req := &v1alpha1.ResolveRoundRequest{}
		if err := yaml.Unmarshal(b, req); err != nil {
			return fmt.Errorf("failed to parse %s: %w", roundFile, err)
		}

		return withClient(func(ctx context.Context, client *v1alpha1.Client) error {
			resp, err := client.ResolveRound(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to resolve round: %w", err)
			}
			return printJSON(resp)
		})
	},
}

func init() {
	battleCommenceCmd.Flags().StringVar(&mode, "mode", "set", "battle mode: set, rotate or optimise")
	battleCommenceCmd.Flags().StringSliceVar(&speciesA, "species-a", nil, "species for participant A")
	battleCommenceCmd.Flags().StringSliceVar(&speciesB, "species-b", nil, "species for participant B")
	battleCommenceCmd.Flags().IntVar(&randomA, "random-a", 0, "random species picks for participant A")
	battleCommenceCmd.Flags().IntVar(&randomB, "random-b", 0, "random species picks for participant B")

	battleListCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum battles to list")

	roundCmd.Flags().StringVarP(&roundFile, "file", "f", "", "round request YAML (required)")
	_ = roundCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init

	battleCmd.AddCommand(battleCommenceCmd)
	battleCmd.AddCommand(battleGetCmd)
	battleCmd.AddCommand(battleListCmd)
}
