package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/payflow-labs/payflow/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for
// money amounts supplied by callers
const MaxDecimalPlaces = 2

// ValidateAndConvertAmount validates a decimal currency string and converts it
// to integer cents. All arithmetic in the core runs on integer cents; decimal
// strings exist only at the API boundary.
// - "12"    -> 1200
// - "12.5"  -> 1250
// - "12.50" -> 1250
// Returns an error for empty, negative, malformed or >2-decimal values.
func ValidateAndConvertAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, fmt.Errorf("%w: negative value", errs.ErrInvalidAmount)
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var integerValue string
	if len(parts) == 1 {
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			integerValue = parts[0] + "00"
		case 1:
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: at most %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	cents, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: not a valid number", errs.ErrInvalidAmount)
	}
	if cents <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", errs.ErrInvalidAmount)
	}

	return cents, nil
}

// CentsToString formats integer cents as a decimal string with exactly two
// decimal places, e.g. 1250 -> "12.50"
func CentsToString(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
