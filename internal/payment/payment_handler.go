package payment

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/pipeline"
	"github.com/joshu-sajeev/staybook/middleware"
)

var methodRules = middleware.Rules{
	"payment_method_id": {
		middleware.RuleNumeric,
		middleware.RuleRequired,
		middleware.Exists("payment_methods", "pay_method_id"),
	},
}

type PaymentHandler struct {
	service  PaymentServiceInterface
	pipeline *pipeline.Pipeline
}

func NewPaymentHandler(s PaymentServiceInterface, p *pipeline.Pipeline) *PaymentHandler {
	return &PaymentHandler{service: s, pipeline: p}
}

var _ PaymentHandlerInterface = (*PaymentHandler)(nil)

// Index lists the caller's active payment methods.
func (h *PaymentHandler) Index(c *gin.Context) {
	userID := middleware.UserID(c)

	h.pipeline.Handle(c, nil, nil, func(ctx context.Context) (common.Outcome, error) {
		return h.service.FetchUserPaymentMethods(ctx, userID)
	})
}

// Store starts adding a card. The body is checked by the service.
func (h *PaymentHandler) Store(c *gin.Context) {
	input := middleware.RequestInput(c)
	userID := middleware.UserID(c)

	h.pipeline.Handle(c, input, nil, func(ctx context.Context) (common.Outcome, error) {
		return h.service.AddPaymentMethod(ctx, userID, dto.NewPaymentMethodCreateDTO(input))
	})
}

func (h *PaymentHandler) Show(c *gin.Context) {
	input := map[string]any{"payment_method_id": c.Param("id")}
	userID := middleware.UserID(c)

	h.pipeline.Handle(c, input, methodRules, func(ctx context.Context) (common.Outcome, error) {
		return h.service.FetchPaymentMethod(ctx, userID, dto.Uint(input["payment_method_id"]))
	})
}

func (h *PaymentHandler) Update(c *gin.Context) {}

func (h *PaymentHandler) Destroy(c *gin.Context) {
	input := map[string]any{"payment_method_id": c.Param("id")}
	userID := middleware.UserID(c)

	h.pipeline.Handle(c, input, methodRules, func(ctx context.Context) (common.Outcome, error) {
		return h.service.DeletePaymentMethod(ctx, userID, dto.Uint(input["payment_method_id"]))
	})
}
