package bootstrap

import (
	"marketplace-catalog/internal/pkg/metrics"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.NewDefault,
	),
)
