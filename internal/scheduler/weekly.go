// Package scheduler runs the recurring weekly report job.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"finbot/internal/core"
	"finbot/internal/log"
	"finbot/internal/report"
)

const reportFileName = "weekly-report.png"

type (
	// Aggregate is the ledger read the job needs.
	Aggregate interface {
		GroupedByTypeAndCategory(ctx context.Context) ([]core.CategoryTotal, error)
	}

	// Poster delivers the finished report to a channel.
	Poster interface {
		Post(ctx context.Context, channelID, content, filename string, image []byte) error
	}

	// WeeklyJob builds and posts the periodic financial summary. The
	// totals are lifetime sums over the whole ledger, not a weekly
	// delta; the label is kept from the original report wording.
	WeeklyJob struct {
		ledger    Aggregate
		renderer  report.Renderer
		poster    Poster
		channelID string
		logger    *log.Logger
	}
)

func NewWeeklyJob(ledger Aggregate, renderer report.Renderer, poster Poster, channelID string, logger *log.Logger) *WeeklyJob {
	return &WeeklyJob{
		ledger:    ledger,
		renderer:  renderer,
		poster:    poster,
		channelID: channelID,
		logger:    logger,
	}
}

// Run executes one firing of the job. Every failure is logged and
// returned; the caller does not retry, the next cron firing is the
// next attempt.
func (j *WeeklyJob) Run(ctx context.Context) error {
	totals, err := j.ledger.GroupedByTypeAndCategory(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Weekly report: ledger query failed", log.FieldError, err)
		return fmt.Errorf("query category totals: %w", err)
	}
	if len(totals) == 0 {
		j.logger.InfoContext(ctx, "Weekly report: no transactions recorded, skipping")
		return nil
	}

	img, err := j.renderer.Render(report.BuildCategoryDataset(totals))
	if err != nil {
		j.logger.ErrorContext(ctx, "Weekly report: chart rendering failed", log.FieldError, err)
		return fmt.Errorf("render weekly chart: %w", err)
	}

	sums := report.SummaryTotals(totals)
	content := fmt.Sprintf(
		"Weekly financial report:\nTotal income: $%s\nTotal expense: $%s\nNet profit: $%s",
		sums.Income.Format(),
		sums.Expense.Format(),
		sums.Net().Format())

	if err := j.poster.Post(ctx, j.channelID, content, reportFileName, img); err != nil {
		j.logger.ErrorContext(ctx, "Weekly report: delivery failed",
			log.FieldChannelID, j.channelID,
			log.FieldError, err)
		return fmt.Errorf("post weekly report: %w", err)
	}

	j.logger.InfoContext(ctx, "Weekly report posted",
		log.FieldChannelID, j.channelID,
		"income_cents", sums.Income.Cents,
		"expense_cents", sums.Expense.Cents)

	return nil
}

// Scheduler fires the weekly job on a cron cadence. Missed firings
// while the process was down are not caught up.
type Scheduler struct {
	cron *cron.Cron
}

// NewWeekly schedules the job with a standard 5-field cron expression
// in server-local time, e.g. "0 0 * * 0" for Sunday midnight.
func NewWeekly(spec string, job *WeeklyJob) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		// Errors are already logged inside Run; nothing to do here.
		_ = job.Run(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("schedule weekly job %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop ends scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
