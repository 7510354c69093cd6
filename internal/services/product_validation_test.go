package services_test

import (
	"encoding/json"
	"testing"

	"productapi/internal/apperrors"
	"productapi/internal/models"
	"productapi/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProductPayload_Valid(t *testing.T) {
	draft, err := services.ValidateProductPayload(validPayload())
	require.NoError(t, err)
	assert.Equal(t, validDraft(), draft)
}

func TestValidateProductPayload_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p map[string]interface{})
		field  string
	}{
		{"missing name", func(p map[string]interface{}) { delete(p, "name") }, "name"},
		{"empty name", func(p map[string]interface{}) { p["name"] = "" }, "name"},
		{"numeric name", func(p map[string]interface{}) { p["name"] = 12.0 }, "name"},
		{"null description", func(p map[string]interface{}) { p["description"] = nil }, "description"},
		{"missing price", func(p map[string]interface{}) { delete(p, "price") }, "price"},
		{"zero price", func(p map[string]interface{}) { p["price"] = 0.0 }, "price"},
		{"string price", func(p map[string]interface{}) { p["price"] = "150" }, "price"},
		{"boolean category", func(p map[string]interface{}) { p["category"] = true }, "category"},
		{"inStock false", func(p map[string]interface{}) { p["inStock"] = false }, "inStock"},
		{"inStock string", func(p map[string]interface{}) { p["inStock"] = "true" }, "inStock"},
		{"missing inStock", func(p map[string]interface{}) { delete(p, "inStock") }, "inStock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			tt.mutate(payload)

			_, err := services.ValidateProductPayload(payload)
			verr, ok := apperrors.AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, "Invalid or missing Product "+tt.field, verr.Message)
		})
	}
}

func TestValidateProductPayload_FirstFailureWins(t *testing.T) {
	_, err := services.ValidateProductPayload(map[string]interface{}{})
	assert.EqualError(t, err, "Invalid or missing Product name")

	_, err = services.ValidateProductPayload(map[string]interface{}{
		"name":     "Kettle",
		"price":    0.0,
		"inStock":  false,
		"category": "",
	})
	assert.EqualError(t, err, "Invalid or missing Product description")

	_, err = services.ValidateProductPayload(nil)
	assert.EqualError(t, err, "Invalid or missing Product name")
}

func TestValidateProductPayload_NegativeAndNumberTypes(t *testing.T) {
	payload := validPayload()
	payload["price"] = -5.0
	draft, err := services.ValidateProductPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, -5.0, draft.Price)

	payload["price"] = json.Number("19.99")
	draft, err = services.ValidateProductPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, models.ProductDraft{
		Name:        "Wireless Headphones",
		Description: "Noise-cancelling over-ear headphones",
		Price:       19.99,
		Category:    "electronics",
		InStock:     true,
	}, draft)

	payload["price"] = json.Number("0")
	_, err = services.ValidateProductPayload(payload)
	assert.EqualError(t, err, "Invalid or missing Product price")
}
