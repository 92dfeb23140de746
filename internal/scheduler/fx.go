package scheduler

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("scheduler",
	fx.Provide(ProvideConfig),
	fx.Provide(New),
	fx.Invoke(NewScheduler),
)

func NewScheduler(lc fx.Lifecycle, cfg Config, sched *Scheduler) {
	if !cfg.Enabled {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := sched.Register(ctx); err != nil {
				cancel()
				return err
			}
			sched.Start()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return sched.Stop(stopCtx)
		},
	})
}
