package dispatch

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/giftflow/internal/app/service/claim"
	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/internal/platform/clock"
	"github.com/fatflowers/giftflow/internal/platform/mailer"
	"github.com/fatflowers/giftflow/pkg/logctx"
	"github.com/fatflowers/giftflow/pkg/tool"
	"github.com/fatflowers/giftflow/pkg/types"
)

// Mailer, ChatSender and Uploader are the delivery providers. Satisfied by
// the platform clients; tests substitute doubles.
type Mailer interface {
	Send(ctx context.Context, msg *mailer.Message) (string, error)
}

type ChatSender interface {
	Send(ctx context.Context, channelID, text string) (string, error)
}

type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// Service delivers issued vouchers to recipients, exactly once per
// recipient, with a NotificationDetail row per attempt as the audit trail.
type Service struct {
	db      *gorm.DB
	log     *zap.SugaredLogger
	clock   clock.Clock
	claimer *claim.Claimer
	mail    Mailer
	chat    ChatSender
	store   Uploader
}

func New(db *gorm.DB, log *zap.SugaredLogger, clk clock.Clock, claimer *claim.Claimer, mail Mailer, chat ChatSender, store Uploader) *Service {
	return &Service{db: db, log: log, clock: clk, claimer: claimer, mail: mail, chat: chat, store: store}
}

// RunPass claims at most one due order and delivers it. Per-order errors
// are persisted on the order, never propagated.
func (s *Service) RunPass(ctx context.Context) (*types.PassResult, error) {
	res := &types.PassResult{Timestamp: s.clock.Now()}

	order, err := s.claimer.ClaimForDispatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("claim order for dispatch: %w", err)
	}
	if order == nil {
		res.Success = true
		return res, nil
	}

	log := logctx.FromCtx(ctx, s.log)
	log.Infow("dispatch pass claimed order", "order_id", order.ID, "kind", order.Kind, "channel", order.Channel)

	if err := s.processOrder(ctx, order); err != nil {
		res.Failed = 1
		if rerr := s.claimer.RecordFailure(ctx, order, err); rerr != nil {
			log.Errorw("failed to record order failure", "order_id", order.ID, "error", rerr)
		}
		return res, nil
	}

	res.Processed = 1
	res.Success = true
	return res, nil
}

func (s *Service) processOrder(ctx context.Context, order *models.Order) error {
	// Scheduling gate: both sides compared in UTC. Not-yet-due is neither a
	// failure nor a retry; the order goes back untouched.
	if due := order.DueAt(); due.After(s.clock.Now()) {
		return s.claimer.Release(ctx, order.ID, types.OrderStatusVouchersCreated)
	}

	var err error
	switch order.Kind {
	case types.OrderKindSingle:
		err = s.deliverSingle(ctx, order)
	case types.OrderKindBulkCSV:
		err = s.deliverBulk(ctx, order)
	case types.OrderKindBulkSummary:
		err = s.deliverSummary(ctx, order)
	default:
		err = fmt.Errorf("unknown order kind: %s", order.Kind)
	}
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transitioned, err := s.claimer.FinalizeDispatchTx(ctx, tx, order.ID)
		if err != nil {
			return fmt.Errorf("finalize dispatch: %w", err)
		}
		if !transitioned {
			logctx.FromCtx(ctx, s.log).Warnw("order left sending before finalize, skipping transition",
				"order_id", order.ID)
		}
		return nil
	})
}

// beginNotification creates the PENDING audit row before any provider call
// and immediately advances it to SENDING.
func (s *Service) beginNotification(ctx context.Context, order *models.Order, recipientID *string, channel types.DeliveryChannel, target string) (*models.NotificationDetail, error) {
	detail := &models.NotificationDetail{
		ID:          tool.GenerateUUIDV7(),
		OrderID:     order.ID,
		RecipientID: recipientID,
		Channel:     channel,
		Target:      target,
		Status:      types.NotificationStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(detail).Error; err != nil {
		return nil, fmt.Errorf("create notification detail: %w", err)
	}
	detail.Status = types.NotificationStatusSending
	if err := s.db.WithContext(ctx).Model(detail).Update("status", detail.Status).Error; err != nil {
		return nil, fmt.Errorf("mark notification sending: %w", err)
	}
	return detail, nil
}

func (s *Service) finishNotification(ctx context.Context, detail *models.NotificationDetail, messageID string, sendErr error) {
	now := s.clock.Now()
	updates := map[string]any{"updated_at": now}
	if sendErr != nil {
		updates["status"] = types.NotificationStatusFailed
		updates["error"] = sendErr.Error()
	} else {
		updates["status"] = types.NotificationStatusDelivered
		updates["sent_at"] = now
		if messageID != "" {
			updates["provider_message_id"] = messageID
		}
	}
	if err := s.db.WithContext(ctx).Model(detail).Updates(updates).Error; err != nil {
		logctx.FromCtx(ctx, s.log).Errorw("failed to update notification detail", "detail_id", detail.ID, "error", err)
	}
}

// deliverSingle sends all of the order's vouchers to its one recipient over
// the order's channel. A provider failure fails the whole attempt.
func (s *Service) deliverSingle(ctx context.Context, order *models.Order) error {
	target := order.RecipientEmail
	if order.Channel == types.DeliveryChannelChat {
		target = order.ChatChannelID
	}

	detail, err := s.beginNotification(ctx, order, nil, order.Channel, target)
	if err != nil {
		return err
	}

	var messageID string
	var sendErr error
	switch order.Channel {
	case types.DeliveryChannelEmail:
		messageID, sendErr = s.mail.Send(ctx, &mailer.Message{
			To:       order.RecipientEmail,
			Subject:  fmt.Sprintf("Your %s gift voucher", brandName(order)),
			HTMLBody: renderVoucherEmail(order, order.Vouchers),
		})
	case types.DeliveryChannelChat:
		messageID, sendErr = s.chat.Send(ctx, order.ChatChannelID, renderVoucherText(order, order.Vouchers))
	case types.DeliveryChannelPrint:
		// buyer prints the voucher; nothing to send
	default:
		sendErr = fmt.Errorf("unsupported channel: %s", order.Channel)
	}

	s.finishNotification(ctx, detail, messageID, sendErr)
	if sendErr != nil {
		return fmt.Errorf("deliver order %s: %w", order.ID, sendErr)
	}
	return nil
}

// deliverBulk emails every recipient their own voucher, skipping recipients
// already delivered so a retry resends only the failed subset.
func (s *Service) deliverBulk(ctx context.Context, order *models.Order) error {
	log := logctx.FromCtx(ctx, s.log)
	vouchersByID := lo.SliceToMap(order.Vouchers, func(v *models.VoucherCode) (string, *models.VoucherCode) {
		return v.ID, v
	})

	sent, failed := 0, 0
	for _, recipient := range order.Recipients {
		if recipient.Delivered {
			continue
		}
		if recipient.VoucherID == nil {
			return fmt.Errorf("recipient %s has no voucher", recipient.ID)
		}
		voucher, ok := vouchersByID[*recipient.VoucherID]
		if !ok {
			return fmt.Errorf("voucher %s not loaded for recipient %s", *recipient.VoucherID, recipient.ID)
		}

		detail, err := s.beginNotification(ctx, order, lo.ToPtr(recipient.ID), types.DeliveryChannelEmail, recipient.Email)
		if err != nil {
			return err
		}
		messageID, sendErr := s.mail.Send(ctx, &mailer.Message{
			To:       recipient.Email,
			ToName:   recipient.Name,
			Subject:  fmt.Sprintf("Your %s gift voucher", brandName(order)),
			HTMLBody: renderVoucherEmail(order, []*models.VoucherCode{voucher}),
		})
		s.finishNotification(ctx, detail, messageID, sendErr)

		if sendErr != nil {
			failed++
			log.Warnw("bulk recipient delivery failed", "order_id", order.ID, "recipient_id", recipient.ID, "error", sendErr)
			continue
		}

		now := s.clock.Now()
		if err := s.db.WithContext(ctx).Model(&models.BulkRecipient{}).
			Where("id = ?", recipient.ID).
			Updates(map[string]any{"delivered": true, "delivered_at": now, "updated_at": now}).Error; err != nil {
			return fmt.Errorf("mark recipient delivered: %w", err)
		}
		sent++
	}

	log.Infow("bulk delivery pass done", "order_id", order.ID, "sent", sent, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d bulk deliveries failed", failed, sent+failed)
	}
	return nil
}

// deliverSummary uploads one manifest of all codes and emails only the link
// to the purchaser.
func (s *Service) deliverSummary(ctx context.Context, order *models.Order) error {
	manifest := renderManifestCSV(order)
	key := fmt.Sprintf("manifests/%s.csv", order.ID)
	url, err := s.store.Upload(ctx, key, "text/csv", manifest)
	if err != nil {
		return fmt.Errorf("upload manifest: %w", err)
	}

	detail, derr := s.beginNotification(ctx, order, nil, types.DeliveryChannelEmail, order.PurchaserEmail)
	if derr != nil {
		return derr
	}
	messageID, sendErr := s.mail.Send(ctx, &mailer.Message{
		To:       order.PurchaserEmail,
		Subject:  fmt.Sprintf("Your %s voucher manifest", brandName(order)),
		HTMLBody: renderManifestEmail(order, url),
	})
	s.finishNotification(ctx, detail, messageID, sendErr)
	if sendErr != nil {
		return fmt.Errorf("deliver manifest for order %s: %w", order.ID, sendErr)
	}
	return nil
}

func brandName(order *models.Order) string {
	if order.Brand != nil && order.Brand.Name != "" {
		return order.Brand.Name
	}
	return "gift"
}
