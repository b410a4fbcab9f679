package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RRRwang/vxtuisong/internal/adapters/render/brief"
	"github.com/RRRwang/vxtuisong/internal/domain"
	"github.com/spf13/cobra"
)

func newSendCmd(app *app) *cobra.Command {
	var dryRun bool
	var asJSON bool
	var workers int

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Compose today's briefing and deliver it to all recipients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd, app, dryRun, asJSON, workers)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compose and render the briefing without sending")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render the delivery report as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent send workers (default 5)")

	return cmd
}

func runSend(cmd *cobra.Command, app *app, dryRun, asJSON bool, workers int) error {
	payload := app.composer.Compose(cmd.Context(), app.now())

	if dryRun {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), brief.RenderPayload(payload))
		return err
	}

	if workers > 0 {
		app.dispatcher.SetWorkers(workers)
	}

	var report domain.DeliveryReport
	dispatch := func(ctx context.Context) error {
		var err error
		report, err = app.dispatcher.Dispatch(ctx, payload)
		return err
	}

	if err := runDispatchSpinner(cmd.Context(), cmd.ErrOrStderr(), dispatch); err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), brief.RenderReport(report))
	return err
}
