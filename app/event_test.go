package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	valid := []byte(`{
		"uuid": "0190a8b0-0000-7000-8000-000000000001",
		"tenant": "acme",
		"user": "alice",
		"source": "billing",
		"type": "billing.invoice.created",
		"subject": "invoices/42",
		"data": {"amount": 100}
	}`)

	event, err := DecodeEvent(valid)
	require.NoError(t, err)
	assert.Equal(t, "acme", event.Tenant)
	assert.Equal(t, "billing.invoice.created", event.Type)
	assert.Equal(t, "invoices/42", event.Subject)

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := DecodeEvent([]byte(`{not json`))
		assert.ErrorIs(t, err, ErrMalformedEvent)
	})

	t.Run("missing tenant", func(t *testing.T) {
		_, err := DecodeEvent([]byte(`{"uuid":"u","type":"a.b.c"}`))
		assert.ErrorIs(t, err, ErrMalformedEvent)
	})

	t.Run("missing uuid", func(t *testing.T) {
		_, err := DecodeEvent([]byte(`{"tenant":"acme","type":"a.b.c"}`))
		assert.ErrorIs(t, err, ErrMalformedEvent)
	})
}

func TestEventTypeValidation(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		valid     bool
	}{
		{"three plain segments", "core.object.created", true},
		{"hyphens and tildes in later segments", "core.my-object.was~done", true},
		{"digits and underscores in later segments", "svc.Obj_2.act_9", true},
		{"uppercase allowed after first segment", "svc.Object.Created", true},
		{"uppercase in first segment", "Core.object.created", false},
		{"digits in first segment", "svc1.object.created", false},
		{"two segments", "core.object", false},
		{"four segments", "a.b.c.d", false},
		{"empty segment", "core..created", false},
		{"segment starting with digit", "core.2object.created", false},
		{"segment starting with hyphen", "core.-object.created", false},
		{"empty type", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{UUID: "u", Tenant: "acme", Type: tt.eventType}
			err := e.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMalformedEvent)
			}
		})
	}
}

func TestTypeSegments(t *testing.T) {
	e := Event{Type: "billing.invoice.created"}
	t1, t2, t3 := e.TypeSegments()
	assert.Equal(t, "billing", t1)
	assert.Equal(t, "invoice", t2)
	assert.Equal(t, "created", t3)
}
