package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks failures caused by the caller's values rather than the store.
var ErrInvalidInput = errors.New("invalid input")

const (
	// amountIntegerDigits and amountScale mirror the DECIMAL(10,2) column.
	amountIntegerDigits = 8
	amountScale         = 2
	// maxAmountFractionDigits bounds the exponent before rounding; rounding
	// a value like 1e-999999999 would build a huge intermediate integer.
	maxAmountFractionDigits = 30
)

var maxAmount = decimal.New(1, amountIntegerDigits)

// ParseAmount coerces a caller-supplied amount into a finite decimal that fits
// the amount column, rounded to cents. Strings are trimmed before parsing;
// JSON numbers are accepted as is.
func ParseAmount(raw any) (decimal.Decimal, error) {
	amount, err := coerceAmount(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return checkAmountRange(amount)
}

// checkAmountRange works on the coefficient and exponent first so that an
// amount such as 1e999999999 is rejected without ever being expanded.
func checkAmountRange(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, nil
	}
	if amount.NumDigits()+int(amount.Exponent()) > amountIntegerDigits {
		return decimal.Decimal{}, fmt.Errorf("%w: amount is out of range", ErrInvalidInput)
	}
	if amount.Exponent() < -maxAmountFractionDigits {
		return decimal.Decimal{}, fmt.Errorf("%w: amount has too many decimal places", ErrInvalidInput)
	}

	rounded := amount.Round(amountScale)
	if rounded.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Decimal{}, fmt.Errorf("%w: amount is out of range", ErrInvalidInput)
	}
	return rounded, nil
}

func coerceAmount(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return parseAmountString(v)
	case json.Number:
		return parseAmountString(v.String())
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, fmt.Errorf("%w: amount must be a finite number", ErrInvalidInput)
		}
		return decimal.NewFromFloat(v), nil
	case float32:
		return coerceAmount(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case nil:
		return decimal.Decimal{}, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: amount must be a number, got %T", ErrInvalidInput, raw)
	}
}

func parseAmountString(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q is not a number", ErrInvalidInput, s)
	}
	return amount, nil
}

// ParseDescription requires a string that is non-empty after trimming. The
// input value is returned untrimmed.
func ParseDescription(raw any) (string, error) {
	desc, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: description must be a string", ErrInvalidInput)
	}
	if strings.TrimSpace(desc) == "" {
		return "", fmt.Errorf("%w: description must not be empty", ErrInvalidInput)
	}
	return desc, nil
}

// descriptionForUpdate is the looser rule applied on update: any present
// value is stored in its string form.
func descriptionForUpdate(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", fmt.Errorf("%w: description is required", ErrInvalidInput)
	case string:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v).String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// ValidateUpdate applies the update rules without writing anything. It lets a
// caller reject bad values for an update that cannot match a record.
func ValidateUpdate(amount any, description any) error {
	_, _, err := parseUpdate(amount, description)
	return err
}

func parseUpdate(amount any, description any) (decimal.Decimal, string, error) {
	parsedAmount, err := ParseAmount(amount)
	if err != nil {
		return decimal.Decimal{}, "", err
	}
	desc, err := descriptionForUpdate(description)
	if err != nil {
		return decimal.Decimal{}, "", err
	}
	return parsedAmount, desc, nil
}
