package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/config"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/models"
	"github.com/joshu-sajeev/staybook/middleware"
)

const notFoundMessage = "Payment method not found."

type PaymentService struct {
	repo PaymentMethodRepoInterface
}

func NewPaymentService(repo PaymentMethodRepoInterface) *PaymentService {
	return &PaymentService{repo: repo}
}

var _ PaymentServiceInterface = (*PaymentService)(nil)

func (s *PaymentService) FetchUserPaymentMethods(ctx context.Context, userID uint) (common.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return timedOut(), nil
	}

	methods, err := s.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		if canceled(err) {
			return timedOut(), nil
		}
		return nil, pkgerrors.WithStack(err)
	}

	dtos := make([]dto.PaymentMethodResponseDTO, len(methods))
	for i, m := range methods {
		dtos[i] = toResponse(m)
	}

	return common.OK(dtos, "Payment methods fetched successfully."), nil
}

// AddPaymentMethod records a pending card and returns the reference and
// metadata the client passes to the gateway. The card becomes active when the
// gateway's charge.success webhook arrives.
func (s *PaymentService) AddPaymentMethod(ctx context.Context, userID uint, in *dto.PaymentMethodCreateDTO) (common.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return timedOut(), nil
	}

	result, err := middleware.ValidateStruct(in)
	if err != nil {
		return nil, pkgerrors.WithStack(err)
	}
	if result.Failed() {
		return common.Fail(http.StatusUnprocessableEntity, common.ValidationErrorMessage, result.Errors), nil
	}

	method := models.PaymentMethod{
		UserID:    userID,
		Reference: uuid.NewString(),
		Status:    string(config.PaymentMethodPending),
		Email:     in.Email,
	}

	if err := s.repo.Create(ctx, &method); err != nil {
		if canceled(err) {
			return timedOut(), nil
		}
		return nil, pkgerrors.WithStack(err)
	}

	zerolog.Ctx(ctx).Info().
		Uint("payment_method_id", method.ID).
		Str("reference", method.Reference).
		Msg("payment method pending activation")

	return common.Created(dto.PaymentMethodInitDTO{
		PaymentMethodID: method.ID,
		Reference:       method.Reference,
		Email:           method.Email,
		Status:          method.Status,
		Metadata:        map[string]string{"todo": config.TodoAddPaymentMethod},
	}, "Payment method initialized."), nil
}

func (s *PaymentService) FetchPaymentMethod(ctx context.Context, userID, id uint) (common.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return timedOut(), nil
	}

	method, outcome, err := s.find(ctx, userID, id)
	if outcome != nil || err != nil {
		return outcome, err
	}

	return common.OK(toResponse(*method), "Payment method fetched successfully."), nil
}

// DeletePaymentMethod removes one of the caller's methods. The repository
// promotes another active method when the default one is removed.
func (s *PaymentService) DeletePaymentMethod(ctx context.Context, userID, id uint) (common.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return timedOut(), nil
	}

	method, outcome, err := s.find(ctx, userID, id)
	if outcome != nil || err != nil {
		return outcome, err
	}

	if err := s.repo.Delete(ctx, method); err != nil {
		if canceled(err) {
			return timedOut(), nil
		}
		return nil, pkgerrors.WithStack(err)
	}

	zerolog.Ctx(ctx).Info().Uint("payment_method_id", id).Msg("payment method deleted")

	return common.OK(map[string]any{"payment_method_id": id}, "Payment method deleted successfully."), nil
}

func (s *PaymentService) find(ctx context.Context, userID, id uint) (*models.PaymentMethod, common.Outcome, error) {
	method, err := s.repo.GetForUser(ctx, userID, id)
	if err == nil {
		return method, nil, nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, common.Fail(http.StatusNotFound, notFoundMessage, nil), nil
	case canceled(err):
		return nil, timedOut(), nil
	default:
		return nil, nil, pkgerrors.WithStack(err)
	}
}

func toResponse(m models.PaymentMethod) dto.PaymentMethodResponseDTO {
	return dto.PaymentMethodResponseDTO{
		ID:          m.ID,
		Reference:   m.Reference,
		Status:      m.Status,
		IsDefault:   m.IsDefault,
		Email:       m.Email,
		Last4:       m.Last4,
		Brand:       m.Brand,
		ExpMonth:    m.ExpMonth,
		ExpYear:     m.ExpYear,
		ActivatedAt: m.ActivatedAt,
		CreatedAt:   m.CreatedAt,
	}
}

func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func timedOut() common.Failure {
	return common.Fail(http.StatusRequestTimeout, "request timed out", nil)
}
