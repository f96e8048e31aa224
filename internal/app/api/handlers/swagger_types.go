package handlers

import (
	"github.com/fatflowers/giftflow/internal/app/service/orders"
	"github.com/fatflowers/giftflow/internal/app/service/redemption"
	"github.com/fatflowers/giftflow/internal/app/service/settlement"
	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/pkg/response"
	"github.com/fatflowers/giftflow/pkg/types"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespPassResult wraps a pipeline pass result in the standard envelope.
type RespPassResult struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    types.PassResult         `json:"data"`
}

// RespRedemptionResult wraps a redemption webhook result in the standard envelope.
type RespRedemptionResult struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    redemption.Result        `json:"data"`
}

// RespScanOrders wraps the admin order listing in the standard envelope.
type RespScanOrders struct {
	Code    response.APIResponseCode  `json:"code"`
	Message string                    `json:"message"`
	Data    orders.ScanOrdersResponse `json:"data"`
}

// RespOrderDetail wraps one order with its notification history.
type RespOrderDetail struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    OrderDetailResponse      `json:"data"`
}

// RespScanSettlements wraps the admin settlement listing in the standard envelope.
type RespScanSettlements struct {
	Code    response.APIResponseCode           `json:"code"`
	Message string                             `json:"message"`
	Data    settlement.ScanSettlementsResponse `json:"data"`
}

// RespBrandSummary wraps the per-period brand aggregates.
type RespBrandSummary struct {
	Code    response.APIResponseCode        `json:"code"`
	Message string                          `json:"message"`
	Data    []settlement.BrandPeriodSummary `json:"data"`
}

// RespSettlement wraps a single settlement ledger row.
type RespSettlement struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Settlement        `json:"data"`
}
