package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/giftflow/internal/app/api/server"
	"github.com/fatflowers/giftflow/internal/app/scheduler"
	"github.com/fatflowers/giftflow/internal/app/service/claim"
	"github.com/fatflowers/giftflow/internal/app/service/dispatch"
	"github.com/fatflowers/giftflow/internal/app/service/issuance"
	"github.com/fatflowers/giftflow/internal/app/service/orders"
	"github.com/fatflowers/giftflow/internal/app/service/redemption"
	"github.com/fatflowers/giftflow/internal/app/service/settlement"
	"github.com/fatflowers/giftflow/internal/platform/chat"
	"github.com/fatflowers/giftflow/internal/platform/clock"
	"github.com/fatflowers/giftflow/internal/platform/db"
	"github.com/fatflowers/giftflow/internal/platform/giftcard"
	"github.com/fatflowers/giftflow/internal/platform/mailer"
	"github.com/fatflowers/giftflow/internal/platform/storage"
	"github.com/fatflowers/giftflow/pkg/config"
	"github.com/fatflowers/giftflow/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	clock.Module,
	giftcard.Module,
	mailer.Module,
	chat.Module,
	storage.Module,
	claim.Module,
	settlement.Module,
	issuance.Module,
	dispatch.Module,
	redemption.Module,
	orders.Module,
	scheduler.Module,
	server.Module,
)
