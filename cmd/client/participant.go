package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
)

var participantCmd = &cobra.Command{
	Use:   "participant",
	Short: "Inspect participants",
}

var participantGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a participant's registry and record",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, client *v1alpha1.Client) error {
			p, err := client.GetParticipant(ctx, &v1alpha1.GetParticipantRequest{Name: args[0]})
			if err != nil {
				return fmt.Errorf("failed to get participant: %w", err)
			}

			fmt.Printf("👤 %s\n", p.Name)
			fmt.Printf("Battles: %d fought, %d won\n", p.BattlesFought, p.BattlesWon)
			fmt.Printf("Registry (%.0f%%): %v\n", p.CompletionRatio*100, p.Registry)
			return nil
		})
	},
}

func init() {
	participantCmd.AddCommand(participantGetCmd)
}
