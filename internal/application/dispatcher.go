package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RRRwang/vxtuisong/internal/domain"
	"github.com/RRRwang/vxtuisong/internal/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 5

// Dispatcher fans a composed payload out to every configured recipient over
// a bounded worker pool and aggregates the per-recipient outcomes. A send is
// attempted exactly once per recipient; failures are counted, not retried.
type Dispatcher struct {
	recipients []string
	sender     ports.TemplateSender
	tokens     ports.TokenSource
	workers    int
	logger     *slog.Logger
}

func NewDispatcher(recipients []string, sender ports.TemplateSender, tokens ports.TokenSource, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		recipients: recipients,
		sender:     sender,
		tokens:     tokens,
		workers:    defaultWorkers,
		logger:     logger,
	}
}

// SetWorkers overrides the pool size; values below 1 keep the default.
func (d *Dispatcher) SetWorkers(n int) {
	if n >= 1 {
		d.workers = n
	}
}

// Dispatch blocks until every recipient has been attempted. It fails fast
// only when no access token can be obtained at all: with nothing to
// authorize the sends, the whole dispatch aborts with zero attempts.
func (d *Dispatcher) Dispatch(ctx context.Context, payload domain.Payload) (domain.DeliveryReport, error) {
	runID := uuid.NewString()

	if _, err := d.tokens.Token(ctx); err != nil {
		return domain.DeliveryReport{RunID: runID}, fmt.Errorf("dispatch aborted: %w", err)
	}

	outcomes := make([]domain.DeliveryOutcome, len(d.recipients))

	var group errgroup.Group
	group.SetLimit(d.workers)

	for i, recipient := range d.recipients {
		i, recipient := i, recipient
		group.Go(func() error {
			err := d.sender.Send(ctx, recipient, payload)
			if err != nil {
				d.logger.Error("send failed", "run_id", runID, "recipient", recipient, "error", err)
			}

			// Each worker owns its slice slot, so no lock is needed.
			// Failures fold into the aggregate, never past the worker.
			outcomes[i] = domain.DeliveryOutcome{Recipient: recipient, Succeeded: err == nil}
			return nil
		})
	}
	_ = group.Wait()

	report := domain.DeliveryReport{RunID: runID, Outcomes: outcomes}
	for _, outcome := range outcomes {
		if outcome.Succeeded {
			report.Sent++
		} else {
			report.Failed++
		}
	}

	d.logger.Info("dispatch complete",
		"run_id", runID, "sent", report.Sent, "failed", report.Failed)

	return report, nil
}
