package cli

import (
	"github.com/spf13/cobra"
)

func newChartCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "chart <date> <time> <location>",
		Short: "Compute a natal chart",
		Long: `Compute a natal chart from birth details.

The date is YYYY-MM-DD and the time HH:MM, interpreted as UTC. The
location is geocoded server-side; an unknown location is an error,
never a silent default.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"birthDate":     args[0],
				"birthTime":     args[1],
				"birthLocation": args[2],
			}

			var result ChartEnvelope
			if err := client.Post("/astro", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.Result)

			if save {
				update := map[string]any{
					"birthDate":     args[0],
					"birthTime":     args[1],
					"birthLocation": args[2],
					"astroData": map[string]string{
						"sunSign":       result.Result.SunSign,
						"moonSign":      result.Result.MoonSign,
						"ascendantSign": result.Result.AscendantSign,
						"midheavenSign": result.Result.MidheavenSign,
					},
				}
				var msg MessageResult
				if err := client.Patch("/update-player-record", update, &msg); err != nil {
					return err
				}
				out.PrintMessage(msg.Message)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Write the result to your player record")

	return cmd
}
