package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/pipeline"
)

const (
	receivedMessage = "Event recieved."

	DefaultMaxBodyBytes int64 = 1 << 20
)

type WebhookHandler struct {
	router   *Router
	pipeline *pipeline.Pipeline
	maxBody  int64
}

// NewWebhookHandler builds the handler. Bodies larger than maxBody bytes are
// rejected; a non-positive maxBody means DefaultMaxBodyBytes.
func NewWebhookHandler(s WebhookServiceInterface, p *pipeline.Pipeline, maxBody int64) *WebhookHandler {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &WebhookHandler{router: NewRouter(s), pipeline: p, maxBody: maxBody}
}

var _ WebhookHandlerInterface = (*WebhookHandler)(nil)

// Handle routes a gateway event and acknowledges it. Unmatched events are
// acknowledged too.
func (h *WebhookHandler) Handle(c *gin.Context) {
	h.pipeline.Handle(c, nil, nil, func(ctx context.Context) (common.Outcome, error) {
		raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			zerolog.Ctx(ctx).Warn().Int64("limit", tooLarge.Limit).Msg("webhook body too large")
			return common.Fail(http.StatusRequestEntityTooLarge, "Payload too large.", nil), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read webhook body")
		}

		logPayload(zerolog.Ctx(ctx), raw)

		payload, err := Parse(raw)
		if err != nil {
			return nil, err
		}

		if err := h.router.Route(ctx, payload); err != nil {
			return nil, err
		}

		return common.Success{Message: receivedMessage, Code: http.StatusOK}, nil
	})
}

func logPayload(log *zerolog.Logger, raw []byte) {
	e := log.Warn()
	if json.Valid(raw) {
		e = e.RawJSON("payload", raw)
	} else {
		e = e.Str("payload", string(raw))
	}
	e.Msg("WBH")
}
