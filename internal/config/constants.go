package config

type PaymentMethodStatus string

type BookingStatus string

const (
	PaymentMethodPending PaymentMethodStatus = "pending"
	PaymentMethodActive  PaymentMethodStatus = "active"

	BookingPending BookingStatus = "pending"
	BookingPaid    BookingStatus = "paid"
)

// Webhook discriminators sent by the payment provider.
const (
	EventChargeSuccess = "charge.success"

	TodoAddPaymentMethod = "addPaymentMethod"
	TodoBookingCharge    = "bookingCharge"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	MaxPage        = 1_000_000
)
