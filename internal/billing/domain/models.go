package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Period identifies one billing cycle by calendar month.
type Period struct {
	Year  int
	Month int
}

// PeriodOf derives the billing period for an instant, in UTC.
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Valid reports whether the period names a real calendar month.
func (p Period) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}

// String renders the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Payment is one customer's charge for one billing cycle. The row id is
// assigned by the store; the (year, month, customer_id) key is unique.
type Payment struct {
	ID         int64        `gorm:"primaryKey;autoIncrement"`
	Year       int          `gorm:"not null;uniqueIndex:ux_payments_cycle_customer,priority:1"`
	Month      int          `gorm:"not null;uniqueIndex:ux_payments_cycle_customer,priority:2"`
	CustomerID snowflake.ID `gorm:"not null;uniqueIndex:ux_payments_cycle_customer,priority:3"`
	IsPaid     bool         `gorm:"not null;default:false"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }

// PaymentStatus is one row of a cycle report: the payment flag joined
// with the customer's display data.
type PaymentStatus struct {
	IsPaid    bool
	Name      string
	DiscordID *string
}

// CycleOutcome classifies what a scheduler run did.
type CycleOutcome string

const (
	// CycleCreated means this run inserted the cycle's payment rows.
	CycleCreated CycleOutcome = "created"
	// CycleAlreadyExists means the existence check found prior rows.
	CycleAlreadyExists CycleOutcome = "exists"
	// CycleCreationRaced means the insert failed and the run assumed a
	// concurrent execution created the cycle first.
	CycleCreationRaced CycleOutcome = "raced"
	// CycleEmpty means no rows exist for the period after the run, so no
	// announcement was sent.
	CycleEmpty CycleOutcome = "empty"
)

// CycleResult reports one scheduler run.
type CycleResult struct {
	Period    Period
	Outcome   CycleOutcome
	Statuses  []PaymentStatus
	Announced bool
}

// BillSummary is the checkbill view of a cycle.
type BillSummary struct {
	Period   Period
	Statuses []PaymentStatus
	AllPaid  bool
}
