package telegram

import (
	"context"

	aiservice "signal_bot/internal/modules/ai/service"
	"signal_bot/internal/modules/telegram_bot/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("telegram",
		// Адаптер: *aiservice.Client -> service.Assistant
		fx.Provide(
			func(c *aiservice.Client) service.Assistant {
				return c
			},
		),

		fx.Provide(
			service.NewTelegram,
		),

		// Запуск основного цикла через Lifecycle
		fx.Invoke(
			func(lc fx.Lifecycle, t *service.Telegram, ctx context.Context) {
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						t.Start(ctx)
						return nil
					},
					OnStop: func(ctx context.Context) error {
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
