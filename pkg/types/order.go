package types

type OrderStatus string

const (
	// OrderStatusPending: payment confirmed, issuance not yet started.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing: issuance worker holds the order.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusRetrying: a previous attempt failed, attempts remain.
	OrderStatusRetrying OrderStatus = "retrying"
	// OrderStatusVouchersCreated: all vouchers exist, delivery pending.
	OrderStatusVouchersCreated OrderStatus = "vouchers_created"
	// OrderStatusSending: dispatch worker holds the order.
	OrderStatusSending OrderStatus = "sending"
	// OrderStatusCompleted: vouchers delivered.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusFailed: retries exhausted, operator intervention required.
	OrderStatusFailed OrderStatus = "failed"
)

type OrderKind string

const (
	// OrderKindSingle: one recipient, one voucher batch for one buyer.
	OrderKindSingle OrderKind = "single"
	// OrderKindBulkCSV: named recipients, one voucher each.
	OrderKindBulkCSV OrderKind = "bulk_csv"
	// OrderKindBulkSummary: one manifest delivered to the purchaser.
	OrderKindBulkSummary OrderKind = "bulk_summary"
)

type SendType string

const (
	SendTypeImmediate SendType = "immediate"
	SendTypeScheduled SendType = "scheduled"
)

type DeliveryChannel string

const (
	DeliveryChannelEmail DeliveryChannel = "email"
	DeliveryChannelChat  DeliveryChannel = "chat"
	// DeliveryChannelPrint: buyer prints the voucher themselves; always succeeds.
	DeliveryChannelPrint DeliveryChannel = "print"
)

type RedemptionStatus string

const (
	RedemptionStatusNone              RedemptionStatus = "none"
	RedemptionStatusPartiallyRedeemed RedemptionStatus = "partially_redeemed"
	RedemptionStatusRedeemed          RedemptionStatus = "redeemed"
)

type NotificationStatus string

const (
	NotificationStatusPending   NotificationStatus = "pending"
	NotificationStatusSending   NotificationStatus = "sending"
	NotificationStatusDelivered NotificationStatus = "delivered"
	NotificationStatusFailed    NotificationStatus = "failed"
)
