package queries

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCODReportQueryIsNotConstructed = errors.New("CODReportQuery must be created via NewCODReportQuery constructor")

// CODReportQuery reconciles collected against transferred cash for the
// records collected in [from, to).
type CODReportQuery struct {
	from            time.Time
	to              time.Time
	onlyOutstanding bool
	guard           guard.ConstructorGuard
}

func NewCODReportQuery(from, to time.Time, onlyOutstanding bool) (CODReportQuery, error) {
	if from.IsZero() || to.IsZero() {
		return CODReportQuery{}, errs.NewValueIsRequiredError("report period")
	}
	if !from.Before(to) {
		return CODReportQuery{}, errs.NewValueIsInvalidErrorWithCause("report period",
			fmt.Errorf("from %s is not before to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)))
	}
	return CODReportQuery{from: from, to: to, onlyOutstanding: onlyOutstanding, guard: guard.NewConstructorGuard()}, nil
}

func (q CODReportQuery) Validate() error {
	return q.guard.Validate(ErrCODReportQueryIsNotConstructed)
}

func (q CODReportQuery) From() time.Time       { return q.from }
func (q CODReportQuery) To() time.Time         { return q.to }
func (q CODReportQuery) OnlyOutstanding() bool { return q.onlyOutstanding }

// CODReportLine is one reconciled reference.
type CODReportLine struct {
	RefKind        string
	RefID          string
	Collected      int64
	Transferred    int64
	Outstanding    int64
	CollectedAt    time.Time
	LastTransferAt *time.Time
	Transfers      int
	Settled        bool
}

// CODReportQueryResponse carries the lines and their sums.
type CODReportQueryResponse struct {
	From             time.Time
	To               time.Time
	Lines            []CODReportLine
	TotalCollected   int64
	TotalTransferred int64
	TotalOutstanding int64
}
