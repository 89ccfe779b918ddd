package notify

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/thititongumpun/uoobpremium/internal/config"
)

var Module = fx.Module("notify",
	fx.Provide(func(cfg config.Config, log *zap.Logger) Notifier {
		return NewWebhookNotifier(cfg.Discord.WebhookURL, log)
	}),
)
