package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// QuoteExpiryJob sweeps active delivery quotes whose expiry has passed.
// Runs every minute so a quote is never accepted long after its window closes.
type QuoteExpiryJob struct {
	handler commands.ExpireQuotesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewQuoteExpiryJob creates the scheduled quote expiry sweep.
func NewQuoteExpiryJob(handler commands.ExpireQuotesCommandHandler, logger *slog.Logger) *QuoteExpiryJob {
	return &QuoteExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "quote_expiry_job"),
	}
}

// Start begins the quote expiry sweep on a one-minute schedule.
func (j *QuoteExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewExpireQuotesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Quote expiry sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Quote expiry job started (running every minute)")
	return nil
}

// Stop stops the quote expiry job.
func (j *QuoteExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Quote expiry job stopped")
}
