package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Text
		wantErr bool
	}{
		{name: "string", raw: `"ref-1"`, want: "ref-1"},
		{name: "integer", raw: `12345`, want: "12345"},
		{name: "large integer keeps digits", raw: `98765432109876543210`, want: "98765432109876543210"},
		{name: "decimal", raw: `12.50`, want: "12.50"},
		{name: "boolean", raw: `true`, want: "true"},
		{name: "null", raw: `null`, want: ""},
		{name: "object", raw: `{"a":1}`, wantErr: true},
		{name: "array", raw: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Text
			err := json.Unmarshal([]byte(tt.raw), &got)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWebhookPayload_Charge(t *testing.T) {
	p := &WebhookPayload{Raw: json.RawMessage(`{
		"event": "charge.success",
		"data": {
			"reference": 777,
			"customer": {"email": "guest@example.com"},
			"authorization": {"last4": "4081", "exp_month": 7, "exp_year": 2031, "reusable": true}
		}
	}`)}

	charge, data, err := p.Charge()
	require.NoError(t, err)

	assert.Equal(t, Text("777"), charge.Reference)
	assert.Equal(t, Text("guest@example.com"), charge.Customer.Email)
	require.NotNil(t, charge.Authorization)
	assert.Equal(t, Text("7"), charge.Authorization.ExpMonth)
	assert.Equal(t, Text("2031"), charge.Authorization.ExpYear)
	assert.True(t, charge.Authorization.Reusable)
	assert.Contains(t, string(data), `"reference": 777`)
}
