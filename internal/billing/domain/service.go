package domain

import (
	"context"
	"errors"
)

// Service drives billing cycle creation and reporting.
type Service interface {
	// RunCycle ensures the period's payment rows exist (creating them at
	// most once) and announces the cycle to the group channel.
	RunCycle(ctx context.Context, period Period) (CycleResult, error)
	// Summarize builds the checkbill view for a period.
	Summarize(ctx context.Context, period Period) (*BillSummary, error)
}

var (
	ErrInvalidPeriod = errors.New("invalid_period")
	ErrBillNotFound  = errors.New("bill_not_found")
)
