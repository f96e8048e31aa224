package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/giftflow/internal/app/service/redemption"
	"github.com/fatflowers/giftflow/pkg/logctx"
	"github.com/fatflowers/giftflow/pkg/response"
)

// @Summary      Redemption Webhook
// @Description  Accepts redemption reports from partner stores. Transactions are idempotent on (transaction_id, store); replays are acknowledged without effect.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        X-Store-URL header string true "Reporting store identifier"
// @Param        payload body redemption.WebhookRequest true "Redemption report"
// @Success      200  {object}  handlers.RespRedemptionResult
// @Router       /api/v1/webhook/redemption [post]
func ApiRedemptionWebhook(svc *redemption.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeURL := c.GetHeader("X-Store-URL")
		if storeURL == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing X-Store-URL header"))
			return
		}

		var req redemption.WebhookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		res, err := svc.Process(c.Request.Context(), storeURL, &req)
		if err != nil {
			if errors.Is(err, redemption.ErrOrderNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "unknown order_id"))
				return
			}
			logctx.FromCtx(c, svc.Logger()).Errorw("webhook_redemption_error", "order_id", req.OrderID, "error", err.Error())
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterWebhookRoutes(r gin.IRouter, svc *redemption.Service) {
	r.POST("/redemption", ApiRedemptionWebhook(svc))
}
