package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/thititongumpun/uoobpremium/internal/billing"
	"github.com/thititongumpun/uoobpremium/internal/clock"
	"github.com/thititongumpun/uoobpremium/internal/config"
	"github.com/thititongumpun/uoobpremium/internal/migration"
	"github.com/thititongumpun/uoobpremium/internal/notify"
	"github.com/thititongumpun/uoobpremium/internal/observability"
	"github.com/thititongumpun/uoobpremium/internal/scheduler"
	"github.com/thititongumpun/uoobpremium/internal/seed"
	"github.com/thititongumpun/uoobpremium/internal/server"
	"github.com/thititongumpun/uoobpremium/pkg/db"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			if cfg.Bootstrap.EnsureDefaultCustomers {
				return seed.EnsureDefaultCustomers(conn, node)
			}
			return nil
		}),

		notify.Module,
		billing.Module,
		scheduler.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
