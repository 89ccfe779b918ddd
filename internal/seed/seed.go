package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	customerdomain "github.com/thititongumpun/uoobpremium/internal/customer/domain"
)

const defaultCustomerCount = 4

// EnsureDefaultCustomers seeds placeholder group members on first boot
// so a fresh database produces a complete cycle. Real names and Discord
// ids are edited in afterwards; the billing core never creates
// customers itself.
func EnsureDefaultCustomers(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).Model(&customerdomain.Customer{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for i := 1; i <= defaultCustomerCount; i++ {
			customer := customerdomain.Customer{
				ID:   node.Generate(),
				Name: fmt.Sprintf("สมาชิก %d", i),
			}
			if err := tx.WithContext(ctx).Create(&customer).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
