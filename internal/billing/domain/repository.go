package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is the store gateway for billing cycles.
type Repository interface {
	// CountPayments returns the number of payment rows for a period.
	CountPayments(ctx context.Context, period Period) (int64, error)
	// InsertPayments creates one unpaid row per customer for a period in
	// a single batched statement. Row ids are store-assigned.
	InsertPayments(ctx context.Context, period Period, customerIDs []snowflake.ID) error
	// ListStatuses returns the period's payment rows joined with
	// customer display data, in customer order.
	ListStatuses(ctx context.Context, period Period) ([]PaymentStatus, error)
	// ListCustomerIDs returns all tracked customer ids.
	ListCustomerIDs(ctx context.Context) ([]snowflake.ID, error)
}
