package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/giftflow/internal/app/service/orders"
	"github.com/fatflowers/giftflow/internal/app/service/settlement"
	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/pkg/response"
)

type PayoutRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

type OrderDetailResponse struct {
	Order         *models.Order                `json:"order"`
	Notifications []*models.NotificationDetail `json:"notifications"`
}

// @Summary      List Orders (Admin)
// @Description  Retrieves a paginated and filterable list of orders.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body orders.ScanOrdersRequest true "List orders request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespScanOrders
// @Router       /api/v1/admin/orders/scan [post]
func ApiScanOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orders.ScanOrdersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.ScanOrders(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get Order (Admin)
// @Description  Retrieves one order with vouchers, recipients and notification history.
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200  {object}  handlers.RespOrderDetail
// @Router       /api/v1/admin/orders/{id} [get]
func ApiGetOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, details, err := svc.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, orders.ErrOrderNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "unknown order id"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&OrderDetailResponse{Order: order, Notifications: details}))
	}
}

// @Summary      List Settlements (Admin)
// @Description  Retrieves a paginated and filterable list of settlement ledger rows.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body settlement.ScanSettlementsRequest true "List settlements request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespScanSettlements
// @Router       /api/v1/admin/settlements/scan [post]
func ApiScanSettlements(svc *settlement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req settlement.ScanSettlementsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.ScanSettlements(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Brand Settlement Summary (Admin)
// @Description  Aggregates a brand's settlement ledger by period, newest first.
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Brand ID"
// @Success      200  {object}  handlers.RespBrandSummary
// @Router       /api/v1/admin/brands/{id}/settlements [get]
func ApiBrandSettlementSummary(svc *settlement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.BrandSummary(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Record Settlement Payout (Admin)
// @Description  Records a payout against a settlement row. A partial payout closes the row and opens a successor carrying the remainder.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Settlement ID"
// @Param        request body PayoutRequest true "Payout amount in minor units"
// @Success      200  {object}  handlers.RespSettlement
// @Router       /api/v1/admin/settlements/{id}/payout [post]
func ApiRecordPayout(svc *settlement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PayoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.RecordPayout(c.Request.Context(), c.Param("id"), req.Amount)
		if err != nil {
			switch {
			case errors.Is(err, settlement.ErrSettlementNotFound),
				errors.Is(err, settlement.ErrAlreadyPaidOut),
				errors.Is(err, settlement.ErrInvalidPayout):
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			default:
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			}
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminRoutes(r gin.IRouter, orderSvc *orders.Service, settleSvc *settlement.Service) {
	r.POST("/orders/scan", ApiScanOrders(orderSvc))
	r.GET("/orders/:id", ApiGetOrder(orderSvc))
	r.POST("/settlements/scan", ApiScanSettlements(settleSvc))
	r.GET("/brands/:id/settlements", ApiBrandSettlementSummary(settleSvc))
	r.POST("/settlements/:id/payout", ApiRecordPayout(settleSvc))
}
