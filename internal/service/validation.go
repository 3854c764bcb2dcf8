package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/ayo6706/loan-origination/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidRange reports whether min is strictly below max.
func ValidRange(min, max decimal.Decimal) bool {
	return min.LessThan(max)
}

// SupportedCurrency reports whether code is on the currency allow-list, ignoring case.
func SupportedCurrency(code string) bool {
	_, ok := domain.SupportedCurrencies[strings.ToLower(code)]
	return ok
}

// OriginationCurrency reports whether loans can currently be originated in code.
// This is narrower than SupportedCurrency.
func OriginationCurrency(code string) bool {
	return strings.ToLower(code) == domain.OriginationCurrency
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// scalarText returns the text of a JSON number or the contents of a JSON string.
func scalarText(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}
	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	case c == '-' || (c >= '0' && c <= '9'):
		return string(trimmed), true
	default:
		return "", false
	}
}

func requireString(field string, raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", domain.InvalidRequest(field)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", domain.InvalidRequest(field)
	}
	if strings.TrimSpace(s) == "" {
		return "", domain.InvalidRequest(field)
	}
	return s, nil
}

func requireInteger(field string, raw json.RawMessage) (int64, error) {
	if isNull(raw) {
		return 0, domain.InvalidRequest(field)
	}
	text, ok := scalarText(raw)
	if !ok {
		return 0, domain.InvalidRequest(field)
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, domain.InvalidRequest(field)
	}
	return n, nil
}

func requireDecimal(field string, raw json.RawMessage) (decimal.Decimal, error) {
	if isNull(raw) {
		return decimal.Zero, domain.InvalidRequest(field)
	}
	text, ok := scalarText(raw)
	if !ok {
		return decimal.Zero, domain.InvalidRequest(field)
	}
	d, err := decimal.NewFromString(text)
	if err != nil || !plainAmount(d) {
		return decimal.Zero, domain.InvalidRequest(field)
	}
	return d, nil
}

// Amount bounds. Anything outside them is rejected before it reaches a
// comparison, which would otherwise expand the exponent in full.
const (
	maxAmountScale  = 6
	maxAmountDigits = 18
)

// plainAmount reports whether d has at most maxAmountScale fractional digits,
// no positive exponent and at most maxAmountDigits significant digits.
func plainAmount(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > 0 || exp < -maxAmountScale {
		return false
	}
	return d.NumDigits() <= maxAmountDigits
}

// optionalBool accepts true/false, their string forms, or null (false).
func optionalBool(field string, raw json.RawMessage) (bool, error) {
	if isNull(raw) {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false, domain.InvalidRequest(field)
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, domain.InvalidRequest(field)
	}
	return b, nil
}

// recordKey interprets a client-supplied identifier. Values that cannot name
// a stored record (non-integers, other JSON types) report false.
func recordKey(raw json.RawMessage) (int64, bool) {
	text, ok := scalarText(raw)
	if !ok {
		return 0, false
	}
	return ParseRecordKey(text)
}

// ParseRecordKey interprets a textual identifier such as a path parameter.
func ParseRecordKey(text string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// outcome is the metrics label for err.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, domain.ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnsupportedCurrency):
		return "unsupported_currency"
	case errors.Is(err, domain.ErrMerchantNotFound):
		return "merchant_not_found"
	default:
		return "error"
	}
}
