package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	billingdomain "github.com/thititongumpun/uoobpremium/internal/billing/domain"
)

// Repository is the gorm-backed store gateway for billing cycles.
type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CountPayments(ctx context.Context, period billingdomain.Period) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(1)
		 FROM payments
		 WHERE year = ? AND month = ?`,
		period.Year,
		period.Month,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// InsertPayments creates the period's rows in one batched statement.
// The composite unique key on (year, month, customer_id) plus ON
// CONFLICT DO NOTHING makes concurrent creation collapse into a single
// visible row set.
func (r *Repository) InsertPayments(ctx context.Context, period billingdomain.Period, customerIDs []snowflake.ID) error {
	if len(customerIDs) == 0 {
		return nil
	}

	// created_at/updated_at come from the schema defaults; the store
	// gateway never reads the wall clock.
	values := make([]string, 0, len(customerIDs))
	args := make([]any, 0, len(customerIDs)*3)
	for _, customerID := range customerIDs {
		values = append(values, "(?, ?, ?, false)")
		args = append(args, period.Year, period.Month, customerID)
	}

	query := `INSERT INTO payments (year, month, customer_id, is_paid)
		 VALUES ` + strings.Join(values, ", ") + `
		 ON CONFLICT (year, month, customer_id) DO NOTHING`

	return r.db.WithContext(ctx).Exec(query, args...).Error
}

func (r *Repository) ListStatuses(ctx context.Context, period billingdomain.Period) ([]billingdomain.PaymentStatus, error) {
	var statuses []billingdomain.PaymentStatus
	err := r.db.WithContext(ctx).Raw(
		`SELECT p.is_paid, c.name, c.discord_id
		 FROM payments p
		 JOIN customers c ON c.id = p.customer_id
		 WHERE p.year = ? AND p.month = ?
		 ORDER BY c.id`,
		period.Year,
		period.Month,
	).Scan(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *Repository) ListCustomerIDs(ctx context.Context) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := r.db.WithContext(ctx).Raw(
		`SELECT id FROM customers ORDER BY id`,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
