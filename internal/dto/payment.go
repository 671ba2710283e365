package dto

import "time"

type PaymentMethodCreateDTO struct {
	Email string `json:"email" validate:"required,email"`
}

// PaymentMethodInitDTO is returned when a card is added. The client starts the
// gateway charge with Reference and Metadata; the provider webhook activates it.
type PaymentMethodInitDTO struct {
	PaymentMethodID uint              `json:"payment_method_id"`
	Reference       string            `json:"reference"`
	Email           string            `json:"email"`
	Status          string            `json:"status"`
	Metadata        map[string]string `json:"metadata"`
}

type PaymentMethodResponseDTO struct {
	ID          uint       `json:"payment_method_id"`
	Reference   string     `json:"reference"`
	Status      string     `json:"status"`
	IsDefault   bool       `json:"is_default"`
	Email       string     `json:"email"`
	Last4       string     `json:"last4,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	ExpMonth    string     `json:"exp_month,omitempty"`
	ExpYear     string     `json:"exp_year,omitempty"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewPaymentMethodCreateDTO(input map[string]any) *PaymentMethodCreateDTO {
	return &PaymentMethodCreateDTO{Email: String(input["email"])}
}
