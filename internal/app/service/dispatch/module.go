package dispatch

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/giftflow/internal/app/service/claim"
	"github.com/fatflowers/giftflow/internal/platform/chat"
	"github.com/fatflowers/giftflow/internal/platform/clock"
	"github.com/fatflowers/giftflow/internal/platform/mailer"
	"github.com/fatflowers/giftflow/internal/platform/storage"
)

func newService(db *gorm.DB, log *zap.SugaredLogger, clk clock.Clock, claimer *claim.Claimer, mail *mailer.Client, chatClient *chat.Client, store *storage.Client) *Service {
	return New(db, log, clk, claimer, mail, chatClient, store)
}

var Module = fx.Options(
	fx.Provide(newService),
)
