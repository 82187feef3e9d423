package signals

import (
	"context"

	aiservice "signal_bot/internal/modules/ai/service"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/signals/service"
	"signal_bot/internal/modules/signals/service/pg"
	"signal_bot/pkg/db"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("signals",
		fx.Provide(
			// снапшоты в pg, если сконфигурирован, иначе no-op
			func(cfg *config.Config, txm *db.PgTxManager) service.Store {
				if cfg.PersistSignals && txm != nil {
					return pg.NewSignals(txm)
				}
				return service.NewNoopStore()
			},
			service.NewRegistry,
			service.NewReconciler,
			service.NewDispatcher,
		),

		// Адаптер: *service.Registry -> aiservice.SignalContext
		fx.Provide(
			func(r *service.Registry) aiservice.SignalContext {
				return r
			},
		),

		fx.Invoke(
			func(lc fx.Lifecycle, r *service.Registry) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return r.Restore(ctx)
					},
				})
			},
		),
	)
}
