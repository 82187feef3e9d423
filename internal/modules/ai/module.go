package ai

import (
	"signal_bot/internal/modules/ai/service"
	signalssvc "signal_bot/internal/modules/signals/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("ai",
		fx.Provide(
			service.NewClient,
		),

		// Адаптер: *service.Client -> signals.Parser
		fx.Provide(
			func(c *service.Client) signalssvc.Parser {
				return c
			},
		),
	)
}
