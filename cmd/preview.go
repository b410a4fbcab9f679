package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/RRRwang/vxtuisong/internal/adapters/render/brief"
	"github.com/spf13/cobra"
)

func newPreviewCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Compose today's briefing and render it without sending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload := app.composer.Compose(cmd.Context(), app.now())

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(payload)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), brief.RenderPayload(payload))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render the briefing as JSON")

	return cmd
}
