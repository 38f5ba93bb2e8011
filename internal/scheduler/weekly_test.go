package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"finbot/internal/core"
	"finbot/internal/log"
	"finbot/internal/report"
)

type fakeAggregate struct {
	totals []core.CategoryTotal
	err    error
}

func (f *fakeAggregate) GroupedByTypeAndCategory(context.Context) ([]core.CategoryTotal, error) {
	return f.totals, f.err
}

type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(report.Dataset) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png-bytes"), nil
}

type fakePoster struct {
	channelID string
	content   string
	filename  string
	image     []byte
	err       error
	calls     int
}

func (f *fakePoster) Post(_ context.Context, channelID, content, filename string, image []byte) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.channelID = channelID
	f.content = content
	f.filename = filename
	f.image = image
	return nil
}

func testLogger() *log.Logger {
	return log.New(slog.LevelError, "test")
}

func sampleTotals() []core.CategoryTotal {
	return []core.CategoryTotal{
		{Type: core.Income, Category: "Salary", Total: core.Money{Cents: 10000}},
		{Type: core.Expense, Category: "Dining", Total: core.Money{Cents: 3000}},
	}
}

func TestWeeklyJobPostsSummary(t *testing.T) {
	poster := &fakePoster{}
	job := NewWeeklyJob(&fakeAggregate{totals: sampleTotals()}, &fakeRenderer{}, poster, "chan-1", testLogger())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if poster.channelID != "chan-1" || poster.filename != "weekly-report.png" {
		t.Fatalf("unexpected delivery: %+v", poster)
	}
	for _, want := range []string{"Total income: $100.00", "Total expense: $30.00", "Net profit: $70.00"} {
		if !strings.Contains(poster.content, want) {
			t.Fatalf("missing %q in %q", want, poster.content)
		}
	}
	if len(poster.image) == 0 {
		t.Fatalf("expected an attached image")
	}
}

func TestWeeklyJobEmptyLedgerSkips(t *testing.T) {
	poster := &fakePoster{}
	job := NewWeeklyJob(&fakeAggregate{}, &fakeRenderer{}, poster, "chan-1", testLogger())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("empty ledger should not error: %v", err)
	}
	if poster.calls != 0 {
		t.Fatalf("nothing should be posted for an empty ledger")
	}
}

func TestWeeklyJobFailures(t *testing.T) {
	t.Run("storage", func(t *testing.T) {
		poster := &fakePoster{}
		job := NewWeeklyJob(&fakeAggregate{err: errors.New("db gone")}, &fakeRenderer{}, poster, "chan-1", testLogger())
		if err := job.Run(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
		if poster.calls != 0 {
			t.Fatalf("must not post after a storage failure")
		}
	})

	t.Run("render", func(t *testing.T) {
		poster := &fakePoster{}
		job := NewWeeklyJob(&fakeAggregate{totals: sampleTotals()}, &fakeRenderer{err: errors.New("bad dataset")}, poster, "chan-1", testLogger())
		if err := job.Run(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
		if poster.calls != 0 {
			t.Fatalf("must not post a partial image")
		}
	})

	t.Run("delivery", func(t *testing.T) {
		job := NewWeeklyJob(&fakeAggregate{totals: sampleTotals()}, &fakeRenderer{}, &fakePoster{err: errors.New("channel gone")}, "chan-1", testLogger())
		if err := job.Run(context.Background()); err == nil {
			t.Fatalf("expected delivery error to surface")
		}
	})
}

func TestNewWeeklyRejectsBadSpec(t *testing.T) {
	job := NewWeeklyJob(&fakeAggregate{}, &fakeRenderer{}, &fakePoster{}, "chan-1", testLogger())
	if _, err := NewWeekly("not a cron", job); err == nil {
		t.Fatalf("expected error for invalid cron spec")
	}
	s, err := NewWeekly("0 0 * * 0", job)
	if err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
	s.Start()
	s.Stop()
}
