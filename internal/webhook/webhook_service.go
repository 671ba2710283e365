package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/joshu-sajeev/staybook/internal/config"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/models"
)

type WebhookService struct {
	cards    CardActivatorInterface
	bookings BookingRepoInterface
	guard    Guard
	now      func() time.Time
}

func NewWebhookService(cards CardActivatorInterface, bookings BookingRepoInterface, guard Guard) *WebhookService {
	if guard == nil {
		guard = NoopGuard{}
	}
	return &WebhookService{cards: cards, bookings: bookings, guard: guard, now: time.Now}
}

var _ WebhookServiceInterface = (*WebhookService)(nil)

// ActivateCard completes an addPaymentMethod charge: the pending method with
// the charge reference becomes active and the user's default.
func (s *WebhookService) ActivateCard(ctx context.Context, payload *dto.WebhookPayload) error {
	charge, _, err := payload.Charge()
	if err != nil {
		return undecodable(ctx, config.TodoAddPaymentMethod, err)
	}
	reference := charge.Reference.String()

	return s.once(ctx, config.TodoAddPaymentMethod, reference, func() error {
		activatedAt := s.now()
		card := &models.PaymentMethod{ActivatedAt: &activatedAt}
		if auth := charge.Authorization; auth != nil {
			raw, err := json.Marshal(auth)
			if err != nil {
				return pkgerrors.WithStack(err)
			}
			card.Last4 = auth.Last4.String()
			card.Brand = auth.Brand.String()
			card.ExpMonth = auth.ExpMonth.String()
			card.ExpYear = auth.ExpYear.String()
			card.AuthorizationCode = auth.AuthorizationCode.String()
			card.Authorization = datatypes.JSON(raw)
		}

		method, err := s.cards.Activate(ctx, reference, card)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			zerolog.Ctx(ctx).Warn().Str("reference", reference).Msg("no pending payment method for reference")
			return nil
		}
		if err != nil {
			return pkgerrors.WithStack(err)
		}

		zerolog.Ctx(ctx).Info().
			Uint("payment_method_id", method.ID).
			Uint("user_id", method.UserID).
			Msg("payment method activated")
		return nil
	})
}

// ConfirmWebhookPayment completes a bookingCharge: the pending booking with the
// charge reference is marked paid and the charge data kept with it.
func (s *WebhookService) ConfirmWebhookPayment(ctx context.Context, payload *dto.WebhookPayload) error {
	charge, data, err := payload.Charge()
	if err != nil {
		return undecodable(ctx, config.TodoBookingCharge, err)
	}
	reference := charge.Reference.String()

	return s.once(ctx, config.TodoBookingCharge, reference, func() error {
		booking, err := s.bookings.MarkPaid(ctx, reference, s.now(), datatypes.JSON(data))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			zerolog.Ctx(ctx).Warn().Str("reference", reference).Msg("no pending booking for reference")
			return nil
		}
		if err != nil {
			return pkgerrors.WithStack(err)
		}

		zerolog.Ctx(ctx).Info().
			Uint("booking_id", booking.ID).
			Uint("user_id", booking.UserID).
			Msg("booking paid")
		return nil
	})
}

// undecodable acknowledges a charge whose data cannot be read. Redelivery
// carries the same data, so the event is logged and dropped.
func undecodable(ctx context.Context, todo string, err error) error {
	zerolog.Ctx(ctx).Error().Err(err).Str("todo", todo).Msg("undecodable charge data")
	return nil
}

// once runs fn for the first delivery of reference. A failed run releases the
// claim so the gateway's retry is processed.
func (s *WebhookService) once(ctx context.Context, todo, reference string, fn func() error) error {
	if reference == "" {
		zerolog.Ctx(ctx).Warn().Str("todo", todo).Msg("webhook event without reference")
		return nil
	}

	key := "webhook:" + todo + ":" + reference
	claimed, err := s.guard.Claim(ctx, key)
	if err != nil {
		return pkgerrors.WithStack(err)
	}
	if !claimed {
		zerolog.Ctx(ctx).Info().Str("reference", reference).Msg("duplicate webhook delivery")
		return nil
	}

	if err := fn(); err != nil {
		if releaseErr := s.guard.Release(ctx, key); releaseErr != nil {
			zerolog.Ctx(ctx).Error().Err(releaseErr).Str("key", key).Msg("release webhook claim")
		}
		return err
	}
	return nil
}

// NoopGuard claims every key. It is used when no Redis is configured.
type NoopGuard struct{}

func (NoopGuard) Claim(context.Context, string) (bool, error) { return true, nil }

func (NoopGuard) Release(context.Context, string) error { return nil }
