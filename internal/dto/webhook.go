package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// WebhookPayload is an inbound provider event. Raw keeps the body as received
// so services can decode the parts they need.
type WebhookPayload struct {
	Event string
	Data  map[string]any
	Raw   json.RawMessage
}

type ChargeData struct {
	Reference     Text           `json:"reference"`
	Status        Text           `json:"status"`
	Authorization *Authorization `json:"authorization"`
	Customer      Customer       `json:"customer"`
}

type Authorization struct {
	AuthorizationCode Text `json:"authorization_code"`
	Bin               Text `json:"bin"`
	Last4             Text `json:"last4"`
	ExpMonth          Text `json:"exp_month"`
	ExpYear           Text `json:"exp_year"`
	CardType          Text `json:"card_type"`
	Bank              Text `json:"bank"`
	Brand             Text `json:"brand"`
	Reusable          bool `json:"reusable"`
}

type Customer struct {
	Email Text `json:"email"`
}

// Text is a string field that gateways may also send as a number or boolean.
// Numbers keep their literal form, so 12 becomes "12".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch val := v.(type) {
	case nil:
		return nil
	case string:
		*t = Text(val)
	case json.Number:
		*t = Text(val.String())
	case bool:
		*t = Text(strconv.FormatBool(val))
	default:
		return fmt.Errorf("cannot use %s as text", b)
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Charge decodes the data object of a charge event.
func (p *WebhookPayload) Charge() (*ChargeData, json.RawMessage, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(p.Raw, &envelope); err != nil {
		return nil, nil, fmt.Errorf("decode webhook payload: %w", err)
	}

	var charge ChargeData
	if err := json.Unmarshal(envelope.Data, &charge); err != nil {
		return nil, nil, fmt.Errorf("decode charge data: %w", err)
	}
	return &charge, envelope.Data, nil
}
