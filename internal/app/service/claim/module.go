package claim

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/giftflow/internal/platform/clock"
	cfgpkg "github.com/fatflowers/giftflow/pkg/config"
)

func newClaimer(db *gorm.DB, log *zap.SugaredLogger, clk clock.Clock, cfg *cfgpkg.Config) *Claimer {
	policy := DefaultPolicy()
	if cfg.Pipeline.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.Pipeline.MaxAttempts
	}
	if cfg.Pipeline.StallTimeout > 0 {
		policy.StallTimeout = cfg.Pipeline.StallTimeout
	}
	return NewClaimer(db, log, clk, policy)
}

var Module = fx.Options(
	fx.Provide(newClaimer),
)
