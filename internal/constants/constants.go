package constants

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment status constants
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Queue and task name constants
const (
	QueueDefault     = "default"
	TaskWelcomeEmail = "email:welcome"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// PaymentStatuses lists every valid payment status.
var PaymentStatuses = []string{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidPaymentStatus reports whether s is a known payment status.
func IsValidPaymentStatus(s string) bool {
	for _, v := range PaymentStatuses {
		if v == s {
			return true
		}
	}
	return false
}
