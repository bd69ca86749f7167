package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Player record operations",
	}

	cmd.AddCommand(newRecordGetCmd())
	cmd.AddCommand(newRecordUpdateCmd())

	return cmd
}

func newRecordGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Fetch your player record",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerEnvelope

			if err := client.Get("/api/player", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if result.Player == nil {
				out.PrintMessage("No player record")
				return nil
			}
			out.Print(*result.Player)
			return nil
		},
	}
}

func newRecordUpdateCmd() *cobra.Command {
	var (
		birthDate     string
		birthTime     string
		birthLocation string
		sunSign       string
		moonSign      string
		ascendantSign string
		midheavenSign string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your player record's birth and sign fields",
		Long: `Update the record's birth and sign fields. All fields are written
wholesale: a field left unset is cleared on the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"birthDate":     birthDate,
				"birthTime":     birthTime,
				"birthLocation": birthLocation,
				"astroData": map[string]string{
					"sunSign":       sunSign,
					"moonSign":      moonSign,
					"ascendantSign": ascendantSign,
					"midheavenSign": midheavenSign,
				},
			}

			var result MessageResult
			if err := client.Patch("/update-player-record", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&birthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&birthTime, "birth-time", "", "Birth time (HH:MM)")
	cmd.Flags().StringVar(&birthLocation, "birth-location", "", "Birth location")
	cmd.Flags().StringVar(&sunSign, "sun", "", "Sun sign")
	cmd.Flags().StringVar(&moonSign, "moon", "", "Moon sign")
	cmd.Flags().StringVar(&ascendantSign, "ascendant", "", "Ascendant sign")
	cmd.Flags().StringVar(&midheavenSign, "midheaven", "", "Midheaven sign")

	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the Discord user ID behind your session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result IdentityResult

			if err := client.Get("/get-discord-user-id", &result); err != nil {
				return fmt.Errorf("not logged in: %w", err)
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
