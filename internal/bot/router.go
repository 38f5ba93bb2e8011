// Package bot parses inbound chat commands and maps them onto ledger
// and report operations. Each message is handled independently; no
// state survives between invocations.
package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finbot/internal/core"
	"finbot/internal/log"
	"finbot/internal/report"
)

const (
	cmdAddExpense = "!addexpense"
	cmdAddIncome  = "!addincome"
	cmdExpense    = "!expense"
	cmdIncome     = "!income"
	cmdReport     = "!generateReport"
	cmdDateTotal  = "!datetotal"
)

const dateArgLayout = "2006-01-02"

// chartFileName is a fixed path inside the chart directory. Two
// concurrent report commands race on it, last writer wins.
const chartFileName = "chart.png"

type (
	// Ledger is the store surface the router needs.
	Ledger interface {
		Record(ctx context.Context, user string, typ core.Type, amount core.Money, category string) (core.Transaction, error)
		ListByUserAndType(ctx context.Context, user string, typ core.Type) ([]core.Transaction, error)
		TransactionsInRange(ctx context.Context, start, end time.Time) ([]core.Transaction, error)
		SumByTypeInRange(ctx context.Context, start, end time.Time) (core.DateTotals, error)
	}

	// Message is one inbound chat message, already stripped of any
	// platform specifics.
	Message struct {
		User      string
		Content   string
		ChannelID string
		FromBot   bool
	}

	// File is an image attachment for a reply.
	File struct {
		Name string
		Data []byte
	}

	// Reply is what goes back to the channel the command came from.
	// A nil *Reply means silence.
	Reply struct {
		Content string
		File    *File
	}

	Router struct {
		ledger     Ledger
		renderer   report.Renderer
		chartDir   string
		reportDays int
		logger     *log.Logger

		// now is overridable in tests
		now func() time.Time
	}
)

func NewRouter(ledger Ledger, renderer report.Renderer, chartDir string, reportDays int, logger *log.Logger) *Router {
	return &Router{
		ledger:     ledger,
		renderer:   renderer,
		chartDir:   chartDir,
		reportDays: reportDays,
		logger:     logger,
		now:        time.Now,
	}
}

// Handle routes one inbound message. Messages from the bot itself and
// unrecognized commands produce no reply. Failures never propagate:
// they are logged and turned into a short reply for the requester.
func (r *Router) Handle(ctx context.Context, msg Message) *Reply {
	if msg.FromBot {
		return nil
	}
	fields := strings.Fields(msg.Content)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case cmdAddExpense:
		return r.handleAdd(ctx, msg, fields, core.Expense)
	case cmdAddIncome:
		return r.handleAdd(ctx, msg, fields, core.Income)
	case cmdExpense:
		return r.handleList(ctx, msg, core.Expense)
	case cmdIncome:
		return r.handleList(ctx, msg, core.Income)
	case cmdReport:
		return r.handleReport(ctx, msg, fields)
	case cmdDateTotal:
		return r.handleDateTotal(ctx, msg, fields)
	default:
		return nil
	}
}

func (r *Router) handleAdd(ctx context.Context, msg Message, fields []string, typ core.Type) *Reply {
	if len(fields) < 3 {
		return &Reply{Content: fmt.Sprintf("Usage: %s <amount> <category>", fields[0])}
	}
	amount, err := core.ParseAmount(fields[1])
	if err != nil {
		return &Reply{Content: fmt.Sprintf("Invalid amount %q. Usage: %s <amount> <category>", fields[1], fields[0])}
	}
	category := strings.Join(fields[2:], " ")

	tx, err := r.ledger.Record(ctx, msg.User, typ, amount, category)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to record transaction",
			log.FieldUser, msg.User,
			log.FieldCommand, fields[0],
			log.FieldError, err)
		return &Reply{Content: "Something went wrong, the transaction was not recorded."}
	}

	label := "Expense"
	if typ == core.Income {
		label = "Income"
	}
	return &Reply{Content: fmt.Sprintf("%s recorded: $%s - %s", label, tx.Amount.Format(), tx.Category)}
}

func (r *Router) handleList(ctx context.Context, msg Message, typ core.Type) *Reply {
	rows, err := r.ledger.ListByUserAndType(ctx, msg.User, typ)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list transactions",
			log.FieldUser, msg.User,
			log.FieldTxType, typ,
			log.FieldError, err)
		return &Reply{Content: "Something went wrong while fetching your records."}
	}

	noun := "expenses"
	if typ == core.Income {
		noun = "income"
	}
	if len(rows) == 0 {
		return &Reply{Content: fmt.Sprintf("%s, you have no recorded %s.", msg.User, noun)}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s's %s records:\n", msg.User, noun)
	for _, tx := range rows {
		fmt.Fprintf(&b, "%s: $%s - %s\n", tx.Date.UTC().Format(dateArgLayout), tx.Amount.Format(), tx.Category)
	}
	return &Reply{Content: b.String()}
}

func (r *Router) handleReport(ctx context.Context, msg Message, fields []string) *Reply {
	var startDay, endDay time.Time
	switch len(fields) {
	case 1:
		// Default window: trailing reportDays days ending today
		endDay = r.now().UTC()
		startDay = endDay.AddDate(0, 0, -(r.reportDays - 1))
	case 3:
		var err error
		startDay, err = time.Parse(dateArgLayout, fields[1])
		if err == nil {
			endDay, err = time.Parse(dateArgLayout, fields[2])
		}
		if err != nil {
			return &Reply{Content: "Invalid date format. Please use YYYY-MM-DD."}
		}
		if endDay.Before(startDay) {
			return &Reply{Content: "The end date must not be before the start date."}
		}
	default:
		return &Reply{Content: fmt.Sprintf("Usage: %s [YYYY-MM-DD YYYY-MM-DD]", cmdReport)}
	}

	start, _ := report.DayBounds(startDay)
	_, end := report.DayBounds(endDay)

	rows, err := r.ledger.TransactionsInRange(ctx, start, end)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query transactions for report",
			log.FieldStartDate, start.Format(dateArgLayout),
			log.FieldEndDate, end.Format(dateArgLayout),
			log.FieldError, err)
		return &Reply{Content: "Something went wrong while generating the report."}
	}
	if len(rows) == 0 {
		return &Reply{Content: fmt.Sprintf("No transactions recorded between %s and %s.",
			start.Format(dateArgLayout), end.Format(dateArgLayout))}
	}

	img, err := r.renderer.Render(report.BuildRangeDataset(rows))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to render report chart", log.FieldError, err)
		return &Reply{Content: "Something went wrong while generating the report."}
	}

	r.writeChartFile(ctx, img)

	return &Reply{
		Content: fmt.Sprintf("Income and expense chart for %s to %s:",
			start.Format(dateArgLayout), end.Format(dateArgLayout)),
		File: &File{Name: chartFileName, Data: img},
	}
}

// writeChartFile keeps a copy of the latest on-demand chart on disk.
// The reply attaches the in-memory image either way, so a filesystem
// problem only costs the local copy.
func (r *Router) writeChartFile(ctx context.Context, img []byte) {
	if err := os.MkdirAll(r.chartDir, 0755); err != nil {
		r.logger.WarnContext(ctx, "Failed to create chart directory", log.FieldError, err)
		return
	}
	path := filepath.Join(r.chartDir, chartFileName)
	if err := os.WriteFile(path, img, 0644); err != nil {
		r.logger.WarnContext(ctx, "Failed to write chart file", "path", path, log.FieldError, err)
	}
}

func (r *Router) handleDateTotal(ctx context.Context, msg Message, fields []string) *Reply {
	if len(fields) != 2 {
		return &Reply{Content: "Please provide a date in YYYY-MM-DD format."}
	}
	day, err := time.Parse(dateArgLayout, fields[1])
	if err != nil {
		return &Reply{Content: "Invalid date format. Please use YYYY-MM-DD."}
	}

	start, end := report.DayBounds(day)
	totals, err := r.ledger.SumByTypeInRange(ctx, start, end)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to sum totals for date",
			log.FieldStartDate, fields[1],
			log.FieldError, err)
		return &Reply{Content: "Something went wrong while fetching the totals."}
	}

	return &Reply{Content: fmt.Sprintf(
		"Totals for %s:\nIncome: $%s\nExpense: $%s\nNet: $%s",
		fields[1],
		totals.Income.Format(),
		totals.Expense.Format(),
		totals.Net().Format())}
}
