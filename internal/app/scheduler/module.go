package scheduler

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/giftflow/internal/app/service/dispatch"
	"github.com/fatflowers/giftflow/internal/app/service/issuance"
	cfgpkg "github.com/fatflowers/giftflow/pkg/config"
)

func newRunner(log *zap.SugaredLogger, cfg *cfgpkg.Config, issue *issuance.Service, send *dispatch.Service) *Runner {
	return NewRunner(log, []Task{
		{Name: "issuance", Interval: cfg.Pipeline.IssuanceInterval, Run: issue.RunPass},
		{Name: "dispatch", Interval: cfg.Pipeline.DispatchInterval, Run: send.RunPass},
	})
}

func register(lc fx.Lifecycle, runner *Runner, cfg *cfgpkg.Config, log *zap.SugaredLogger) {
	if cfg.Pipeline.DisableScheduler {
		log.Infow("scheduler disabled, pipeline runs via admin endpoints only")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runner.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			runner.Stop()
			return nil
		},
	})
}

var Module = fx.Options(
	fx.Provide(newRunner),
	fx.Invoke(register),
)
