package audit

import (
	"strings"
)

// Detail keys whose values are always removed before persistence
var secretKeys = map[string]struct{}{
	"password":     {},
	"pin":          {},
	"cvv":          {},
	"cvc":          {},
	"secret":       {},
	"token":        {},
	"access_token": {},
	"private_key":  {},
}

// Detail keys holding account identifiers that are masked to a last-4 fragment
var accountKeys = map[string]struct{}{
	"account_number": {},
	"card_number":    {},
	"routing_number": {},
	"iban":           {},
}

const redactedPlaceholder = "[REDACTED]"

// SanitizeDetails returns a copy of details safe for the audit trail:
// secrets are removed and account identifiers keep only their last 4
// characters. Nested maps are sanitized recursively.
func SanitizeDetails(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}

	sanitized := make(map[string]any, len(details))
	for key, value := range details {
		normalized := strings.ToLower(key)

		if _, ok := secretKeys[normalized]; ok {
			sanitized[key] = redactedPlaceholder
			continue
		}

		if _, ok := accountKeys[normalized]; ok {
			if s, isString := value.(string); isString {
				sanitized[key] = maskToLast4(s)
			} else {
				sanitized[key] = redactedPlaceholder
			}
			continue
		}

		if nested, isMap := value.(map[string]any); isMap {
			sanitized[key] = SanitizeDetails(nested)
			continue
		}

		sanitized[key] = value
	}

	return sanitized
}

// maskToLast4 keeps the last 4 characters of an identifier, e.g.
// "9876543210" -> "****3210". Short values are fully redacted.
func maskToLast4(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) <= 4 {
		return redactedPlaceholder
	}
	return "****" + trimmed[len(trimmed)-4:]
}
