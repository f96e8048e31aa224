package issuance

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/giftflow/internal/app/service/claim"
	"github.com/fatflowers/giftflow/internal/app/service/settlement"
	"github.com/fatflowers/giftflow/internal/platform/clock"
	"github.com/fatflowers/giftflow/internal/platform/giftcard"
	"github.com/fatflowers/giftflow/pkg/claimlink"
	cfgpkg "github.com/fatflowers/giftflow/pkg/config"
)

func newService(db *gorm.DB, log *zap.SugaredLogger, clk clock.Clock, claimer *claim.Claimer, issuer *giftcard.Client, settle *settlement.Service, cfg *cfgpkg.Config) *Service {
	links := claimlink.NewSigner(cfg.ClaimLink.Secret, cfg.ClaimLink.BaseURL, cfg.ClaimLink.TTL)
	return New(db, log, clk, claimer, issuer, settle, links, cfg.Pipeline.BatchSize, cfg.Pipeline.BatchDelay)
}

var Module = fx.Options(
	fx.Provide(newService),
)
