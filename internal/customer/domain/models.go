package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is a tracked group member. Customers are referenced by the
// billing cycle but never created or deleted by it.
type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"not null"`
	DiscordID *string      `gorm:"column:discord_id"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
