// Package docs provides the Swagger metadata served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://example.com/terms/",
        "contact": {
            "name": "API Support",
            "url": "http://www.example.com/support",
            "email": "support@example.com"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/admin/brands/{id}/settlements": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Brand Settlement Summary (Admin)",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Brand ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.RespBrandSummary"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/orders/scan": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "List Orders (Admin)",
                "parameters": [
                    {
                        "description": "List orders request with filters, pagination, and sorting",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/orders.ScanOrdersRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.RespScanOrders"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/orders/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Get Order (Admin)",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Order ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.RespOrderDetail"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/pipeline/dispatch/run": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Pipeline"
                ],
                "summary": "Run Dispatch Pass (Admin)",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.RespPassResult"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/pipeline/issuance/run": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Pipeline"
                ],
                "summary": "Run Issuance Pass (Admin)",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.RespPassResult"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/settlements/scan": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "List Settlements (Admin)",
                "parameters": [
                    {
                        "description": "List settlements request with filters, pagination, and sorting",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/settlement.ScanSettlementsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.RespScanSettlements"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/settlements/{id}/payout": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Record Settlement Payout (Admin)",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Settlement ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Payout amount in minor units",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.PayoutRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.RespSettlement"
                        }
                    }
                }
            }
        },
        "/api/v1/webhook/redemption": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Webhook"
                ],
                "summary": "Redemption Webhook",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Reporting store identifier",
                        "name": "X-Store-URL",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "Redemption report",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/redemption.WebhookRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.RespRedemptionResult"
                        }
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "System"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.OrderDetailResponse": {
            "type": "object",
            "properties": {
                "notifications": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.NotificationDetail"
                    }
                },
                "order": {
                    "$ref": "#/definitions/models.Order"
                }
            }
        },
        "handlers.PayoutRequest": {
            "type": "object",
            "required": [
                "amount"
            ],
            "properties": {
                "amount": {
                    "type": "integer"
                }
            }
        },
        "handlers.RespBrandSummary": {
            "type": "object",
            "properties": {
                "code": {
                    "$ref": "#/definitions/response.APIResponseCode"
                },
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/settlement.BrandPeriodSummary"
                    }
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handlers.RespOrderDetail": {
            "type": "object",
            "properties": {
                "code": {
                    "$ref": "#/definitions/response.APIResponseCode"
                },
                "data": {
                    "$ref": "#/definitions/handlers.OrderDetailResponse"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handlers.RespPassResult": {
            "type": "object",
            "properties": {
                "code": {
                    "$ref": "#/definitions/response.APIResponseCode"
                },
                "data": {
                    "$ref": "#/definitions/types.PassResult"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handlers.RespRedemptionResult": {
            "type": "object",
            "properties": {
                "code": {
                    "$ref": "#/definitions/response.APIResponseCode"
                },
                "data": {
                    "$ref": "#/definitions/redemption.Result"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handlers.RespScanOrders": {
            "type": "object",
            "properties": {
                "code": {
                    "$ref": "#/definitions/response.APIResponseCode"
                },
                "data": {
                    "$ref": "#/definitions/orders.ScanOrdersResponse"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handlers.RespScanSettlements": {
            "type": "object",
            "properties": {
                "code": {
                    "$ref": "#/definitions/response.APIResponseCode"
                },
                "data": {
                    "$ref": "#/definitions/settlement.ScanSettlementsResponse"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handlers.RespSettlement": {
            "type": "object",
            "properties": {
                "code": {
                    "$ref": "#/definitions/response.APIResponseCode"
                },
                "data": {
                    "$ref": "#/definitions/models.Settlement"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "models.Brand": {
            "type": "object",
            "properties": {
                "commission_fixed_fee": {
                    "type": "integer"
                },
                "commission_mode": {
                    "$ref": "#/definitions/types.CommissionMode"
                },
                "commission_rate_bps": {
                    "type": "integer"
                },
                "contact_email": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "vat_rate_bps": {
                    "type": "integer"
                },
                "voucher_validity_months": {
                    "type": "integer"
                }
            }
        },
        "models.BulkRecipient": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "delivered": {
                    "type": "boolean"
                },
                "delivered_at": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "order_id": {
                    "type": "string"
                },
                "row_no": {
                    "type": "integer"
                },
                "updated_at": {
                    "type": "string"
                },
                "voucher_id": {
                    "type": "string"
                }
            }
        },
        "models.NotificationDetail": {
            "type": "object",
            "properties": {
                "channel": {
                    "$ref": "#/definitions/types.DeliveryChannel"
                },
                "created_at": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "order_id": {
                    "type": "string"
                },
                "provider_message_id": {
                    "type": "string"
                },
                "recipient_id": {
                    "type": "string"
                },
                "sent_at": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/types.NotificationStatus"
                },
                "target": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "models.Order": {
            "type": "object",
            "properties": {
                "all_vouchers_generated": {
                    "type": "boolean"
                },
                "attempts": {
                    "type": "integer"
                },
                "brand": {
                    "$ref": "#/definitions/models.Brand"
                },
                "brand_id": {
                    "type": "string"
                },
                "bulk_group_key": {
                    "type": "string"
                },
                "channel": {
                    "$ref": "#/definitions/types.DeliveryChannel"
                },
                "chat_channel_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "kind": {
                    "$ref": "#/definitions/types.OrderKind"
                },
                "last_error": {
                    "type": "string"
                },
                "notifications_sent": {
                    "type": "boolean"
                },
                "paid_at": {
                    "type": "string"
                },
                "processing_started_at": {
                    "type": "string"
                },
                "purchaser_email": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "recipient_email": {
                    "type": "string"
                },
                "recipients": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.BulkRecipient"
                    }
                },
                "redemption_status": {
                    "$ref": "#/definitions/types.RedemptionStatus"
                },
                "scheduled_at": {
                    "type": "string"
                },
                "send_type": {
                    "$ref": "#/definitions/types.SendType"
                },
                "status": {
                    "$ref": "#/definitions/types.OrderStatus"
                },
                "unit_value": {
                    "type": "integer"
                },
                "updated_at": {
                    "type": "string"
                },
                "vouchers": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.VoucherCode"
                    }
                }
            }
        },
        "models.Settlement": {
            "type": "object",
            "properties": {
                "brand_id": {
                    "type": "string"
                },
                "carried_from_id": {
                    "type": "string"
                },
                "commission_amount": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "net_payable": {
                    "type": "integer"
                },
                "outstanding_amount": {
                    "type": "integer"
                },
                "outstanding_quantity": {
                    "type": "integer"
                },
                "paid_amount": {
                    "type": "integer"
                },
                "paid_out": {
                    "type": "boolean"
                },
                "paid_out_at": {
                    "type": "string"
                },
                "period": {
                    "type": "string"
                },
                "redeemed_amount": {
                    "type": "integer"
                },
                "redeemed_quantity": {
                    "type": "integer"
                },
                "seq": {
                    "type": "integer"
                },
                "sold_amount": {
                    "type": "integer"
                },
                "sold_quantity": {
                    "type": "integer"
                },
                "updated_at": {
                    "type": "string"
                },
                "vat_amount": {
                    "type": "integer"
                }
            }
        },
        "models.VoucherCode": {
            "type": "object",
            "properties": {
                "claim_url": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "gift_card_id": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "order_id": {
                    "type": "string"
                },
                "original_value": {
                    "type": "integer"
                },
                "recipient_id": {
                    "type": "string"
                },
                "redeemed": {
                    "type": "boolean"
                },
                "remaining_value": {
                    "type": "integer"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "orders.ScanOrdersRequest": {
            "type": "object",
            "properties": {
                "filters": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.CommonFilter"
                    }
                },
                "from": {
                    "type": "integer"
                },
                "size": {
                    "type": "integer"
                },
                "sort_by": {
                    "type": "string"
                },
                "sort_order": {
                    "type": "string"
                }
            }
        },
        "orders.ScanOrdersResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Order"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "redemption.Result": {
            "type": "object",
            "properties": {
                "processed": {
                    "type": "integer"
                },
                "skipped": {
                    "type": "integer"
                }
            }
        },
        "redemption.Transaction": {
            "type": "object",
            "required": [
                "gift_card_ref",
                "transaction_id"
            ],
            "properties": {
                "amount": {
                    "type": "integer"
                },
                "gateway": {
                    "type": "string"
                },
                "gift_card_ref": {
                    "type": "string"
                },
                "processed_at": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "transaction_id": {
                    "type": "string"
                }
            }
        },
        "redemption.WebhookRequest": {
            "type": "object",
            "required": [
                "order_id",
                "transactions"
            ],
            "properties": {
                "order_id": {
                    "type": "string"
                },
                "transactions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/redemption.Transaction"
                    }
                }
            }
        },
        "response.APIResponseCode": {
            "type": "integer",
            "enum": [
                0,
                40000,
                50000
            ],
            "x-enum-varnames": [
                "APIResponseCodeOK",
                "APIResponseCodeBadRequest",
                "APIResponseCodeError"
            ]
        },
        "settlement.BrandPeriodSummary": {
            "type": "object",
            "properties": {
                "net_payable": {
                    "type": "integer"
                },
                "outstanding_amount": {
                    "type": "integer"
                },
                "outstanding_quantity": {
                    "type": "integer"
                },
                "period": {
                    "type": "string"
                },
                "redeemed_amount": {
                    "type": "integer"
                },
                "sold_amount": {
                    "type": "integer"
                },
                "sold_quantity": {
                    "type": "integer"
                }
            }
        },
        "settlement.ScanSettlementsRequest": {
            "type": "object",
            "properties": {
                "filters": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.CommonFilter"
                    }
                },
                "from": {
                    "type": "integer"
                },
                "size": {
                    "type": "integer"
                },
                "sort_by": {
                    "type": "string"
                },
                "sort_order": {
                    "type": "string"
                }
            }
        },
        "settlement.ScanSettlementsResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Settlement"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "types.CommissionMode": {
            "type": "string",
            "enum": [
                "percent_of_gross",
                "fixed_per_unit"
            ],
            "x-enum-varnames": [
                "CommissionModePercent",
                "CommissionModeFixed"
            ]
        },
        "types.CommonFilter": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "filters": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.CommonFilter"
                    }
                },
                "operator": {
                    "$ref": "#/definitions/types.CommonFilterOperator"
                },
                "values": {
                    "type": "array",
                    "items": {}
                }
            }
        },
        "types.CommonFilterOperator": {
            "type": "string",
            "enum": [
                "eq",
                "not_eq",
                "lt",
                "lte",
                "gt",
                "gte",
                "date_range",
                "range",
                "in"
            ],
            "x-enum-varnames": [
                "CommonFilterOperatorEq",
                "CommonFilterOperatorNotEq",
                "CommonFilterOperatorLt",
                "CommonFilterOperatorLte",
                "CommonFilterOperatorGt",
                "CommonFilterOperatorGte",
                "CommonFilterOperatorDateRange",
                "CommonFilterOperatorRange",
                "CommonFilterOperatorIn"
            ]
        },
        "types.DeliveryChannel": {
            "type": "string",
            "enum": [
                "email",
                "chat",
                "print"
            ],
            "x-enum-varnames": [
                "DeliveryChannelEmail",
                "DeliveryChannelChat",
                "DeliveryChannelPrint"
            ]
        },
        "types.NotificationStatus": {
            "type": "string",
            "enum": [
                "pending",
                "sending",
                "delivered",
                "failed"
            ],
            "x-enum-varnames": [
                "NotificationStatusPending",
                "NotificationStatusSending",
                "NotificationStatusDelivered",
                "NotificationStatusFailed"
            ]
        },
        "types.OrderKind": {
            "type": "string",
            "enum": [
                "single",
                "bulk_csv",
                "bulk_summary"
            ],
            "x-enum-varnames": [
                "OrderKindSingle",
                "OrderKindBulkCSV",
                "OrderKindBulkSummary"
            ]
        },
        "types.OrderStatus": {
            "type": "string",
            "enum": [
                "pending",
                "processing",
                "retrying",
                "vouchers_created",
                "sending",
                "completed",
                "failed"
            ],
            "x-enum-varnames": [
                "OrderStatusPending",
                "OrderStatusProcessing",
                "OrderStatusRetrying",
                "OrderStatusVouchersCreated",
                "OrderStatusSending",
                "OrderStatusCompleted",
                "OrderStatusFailed"
            ]
        },
        "types.PassResult": {
            "type": "object",
            "properties": {
                "failed": {
                    "type": "integer"
                },
                "processed": {
                    "type": "integer"
                },
                "success": {
                    "type": "boolean"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "types.RedemptionStatus": {
            "type": "string",
            "enum": [
                "none",
                "partially_redeemed",
                "redeemed"
            ],
            "x-enum-varnames": [
                "RedemptionStatusNone",
                "RedemptionStatusPartiallyRedeemed",
                "RedemptionStatusRedeemed"
            ]
        },
        "types.SendType": {
            "type": "string",
            "enum": [
                "immediate",
                "scheduled"
            ],
            "x-enum-varnames": [
                "SendTypeImmediate",
                "SendTypeScheduled"
            ]
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8888",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Giftflow Backend API",
	Description:      "Gift voucher fulfillment backend: issuance, delivery, redemption and settlement.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
