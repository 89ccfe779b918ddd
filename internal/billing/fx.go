package billing

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	billingdomain "github.com/thititongumpun/uoobpremium/internal/billing/domain"
	"github.com/thititongumpun/uoobpremium/internal/billing/repository"
	"github.com/thititongumpun/uoobpremium/internal/billing/service"
	"github.com/thititongumpun/uoobpremium/internal/events"
)

var Module = fx.Module("billing",
	fx.Provide(func(db *gorm.DB) billingdomain.Repository {
		return repository.New(db)
	}),
	fx.Provide(func(db *gorm.DB, genID *snowflake.Node) *events.Outbox {
		return events.NewOutbox(db, genID)
	}),
	fx.Provide(service.NewService),
)
