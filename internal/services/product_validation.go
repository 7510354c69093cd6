package services

import (
	"encoding/json"
	"fmt"

	"productapi/internal/apperrors"
	"productapi/internal/models"

	"github.com/go-playground/validator/v10"
)

// The "required" tag rejects zero values, so an empty string, 0 and false all
// count as missing. Clients depend on 0 prices and out-of-stock writes being refused.
var validate = validator.New()

type fieldRule struct {
	field   string
	hasType func(v interface{}) bool
}

// productRules run in order; the first failing rule is reported.
var productRules = []fieldRule{
	{field: "name", hasType: isString},
	{field: "description", hasType: isString},
	{field: "price", hasType: isNumber},
	{field: "category", hasType: isString},
	{field: "inStock", hasType: isBool},
}

// ValidateProductPayload checks a decoded JSON object against the product write
// rules and converts it to a draft. The error is a *apperrors.ValidationError.
func ValidateProductPayload(payload map[string]interface{}) (models.ProductDraft, error) {
	for _, rule := range productRules {
		v, ok := payload[rule.field]
		if !ok || v == nil || !rule.hasType(v) || validate.Var(normalize(v), "required") != nil {
			return models.ProductDraft{}, &apperrors.ValidationError{
				Field:   rule.field,
				Message: fmt.Sprintf("Invalid or missing Product %s", rule.field),
			}
		}
	}

	price, _ := asNumber(payload["price"])
	return models.ProductDraft{
		Name:        payload["name"].(string),
		Description: payload["description"].(string),
		Price:       price,
		Category:    payload["category"].(string),
		InStock:     payload["inStock"].(bool),
	}, nil
}

func isString(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

func isBool(v interface{}) bool {
	_, ok := v.(bool)
	return ok
}

func isNumber(v interface{}) bool {
	_, ok := asNumber(v)
	return ok
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// normalize turns json.Number into float64 so zero checks see the numeric value.
func normalize(v interface{}) interface{} {
	if n, ok := v.(json.Number); ok {
		f, _ := n.Float64()
		return f
	}
	return v
}
