package observability

import (
	"go.opentelemetry.io/otel"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/thititongumpun/uoobpremium/internal/config"
	"github.com/thititongumpun/uoobpremium/internal/observability/logger"
	"github.com/thititongumpun/uoobpremium/internal/observability/metrics"
	"github.com/thititongumpun/uoobpremium/internal/observability/tracing"
)

// Module wires logging, tracing and metrics from the service config.
var Module = fx.Module("observability",
	fx.Provide(func(cfg config.Config) (*zap.Logger, error) {
		return logger.New(cfg.Environment)
	}),
	fx.Provide(func(cfg config.Config) tracing.Config {
		return tracing.Config{
			Enabled:          cfg.Telemetry.Enabled,
			ServiceName:      cfg.Telemetry.ServiceName,
			Environment:      cfg.Environment,
			ExporterEndpoint: cfg.Telemetry.ExporterEndpoint,
			ExporterProtocol: cfg.Telemetry.ExporterProtocol,
			SamplingRatio:    cfg.Telemetry.SamplingRatio,
		}
	}),
	fx.Provide(func(cfg config.Config) metrics.Config {
		return metrics.Config{
			ServiceName: cfg.Telemetry.ServiceName,
			Environment: cfg.Environment,
		}
	}),
	fx.Provide(func(cfg metrics.Config) (*metrics.HTTPMetrics, error) {
		return metrics.NewHTTPMetrics(cfg, otel.GetMeterProvider())
	}),
	fx.Provide(metrics.CycleWithConfig),
	fx.Invoke(tracing.NewProvider),
)
