package sheets

import (
	"context"

	"finbot/internal/core"
)

// RowAppender is the outbound port for the spreadsheet export: one
// ledger row appended per call.
type RowAppender interface {
	AppendTransaction(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}
