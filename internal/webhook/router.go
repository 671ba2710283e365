package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"

	"github.com/joshu-sajeev/staybook/internal/config"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/metrics"
)

const payloadSchemaJSON = `{
	"type": "object",
	"required": ["event", "data"],
	"properties": {
		"event": {"type": "string"},
		"data": {"type": "object"}
	}
}`

var payloadSchema = mustSchema(payloadSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(err)
	}
	return schema
}

const (
	actionActivateCard   = "activate_card"
	actionConfirmPayment = "confirm_payment"
	actionIgnored        = "ignored"
	labelOther           = "other"
	labelNone            = "none"
)

// Parse checks the envelope shape of an inbound event and decodes it.
func Parse(raw []byte) (*dto.WebhookPayload, error) {
	result, err := payloadSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "decode webhook payload")
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, errors.Errorf("invalid webhook payload: %s", strings.Join(msgs, "; "))
	}

	var body struct {
		Event string         `json:"event"`
		Data  map[string]any `json:"data"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, errors.Wrap(err, "decode webhook payload")
	}

	return &dto.WebhookPayload{Event: body.Event, Data: body.Data, Raw: raw}, nil
}

// Router sends events to the confirmation operation named by the event and
// its metadata.todo. Anything it does not recognise is acknowledged and dropped.
type Router struct {
	service WebhookServiceInterface
}

func NewRouter(s WebhookServiceInterface) *Router {
	return &Router{service: s}
}

func (r *Router) Route(ctx context.Context, p *dto.WebhookPayload) error {
	metadata := p.Data["metadata"]
	if !truthy(metadata) {
		record(p.Event, labelNone, actionIgnored)
		return nil
	}

	todo := todoOf(metadata)

	switch p.Event {
	case config.EventChargeSuccess:
		switch todo {
		case config.TodoAddPaymentMethod:
			record(p.Event, todo, actionActivateCard)
			return r.service.ActivateCard(ctx, p)
		case config.TodoBookingCharge:
			record(p.Event, todo, actionConfirmPayment)
			return r.service.ConfirmWebhookPayment(ctx, p)
		default:
			record(p.Event, todo, actionIgnored)
			return nil
		}
	default:
		record(p.Event, todo, actionIgnored)
		return nil
	}
}

// record keeps label values bounded: unknown events and todos share a label.
func record(event, todo, action string) {
	if event != config.EventChargeSuccess {
		event = labelOther
	}
	switch todo {
	case config.TodoAddPaymentMethod, config.TodoBookingCharge, labelNone:
	case "":
		todo = labelNone
	default:
		todo = labelOther
	}
	metrics.WebhookEvents.WithLabelValues(event, todo, action).Inc()
}

// todoOf reads metadata.todo. Some gateways deliver metadata as a JSON
// encoded string, which is decoded first.
func todoOf(metadata any) string {
	if s, ok := metadata.(string); ok {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return ""
		}
		metadata = decoded
	}

	m, ok := metadata.(map[string]any)
	if !ok {
		return ""
	}
	todo, _ := m["todo"].(string)
	return todo
}

// truthy treats null, false, zero, "", "0" and empty objects or arrays as false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case string:
		return t != "" && t != "0"
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}
