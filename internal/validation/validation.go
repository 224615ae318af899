package validation

import (
	"regexp"
	"strings"
	"time"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
)

var (
	nonDigitsRegex     = regexp.MustCompile(`[^0-9]`)
	emailRegex         = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	plateOldRegex      = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	plateMercosulRegex = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// CPF validates a Brazilian CPF number, with or without punctuation.
// The two check digits are verified with the weighted mod 11 scheme.
func CPF(cpf string) error {
	digits := nonDigitsRegex.ReplaceAllString(cpf, "")

	if len(digits) != 11 || strings.Count(digits, digits[:1]) == 11 {
		return appErrors.Validation("invalid cpf")
	}

	if digits[9] != checkDigit(digits[:9], 10) {
		return appErrors.Validation("invalid cpf")
	}
	if digits[10] != checkDigit(digits[:10], 11) {
		return appErrors.Validation("invalid cpf")
	}

	return nil
}

func checkDigit(partial string, weight int) byte {
	total := 0
	for i := 0; i < len(partial); i++ {
		total += int(partial[i]-'0') * (weight - i)
	}
	remainder := total % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + 11 - remainder)
}

func Email(email string) error {
	if !emailRegex.MatchString(email) {
		return appErrors.Validation("invalid email")
	}
	return nil
}

// Phone accepts Brazilian phone numbers: 10 or 11 digits after stripping
// any punctuation.
func Phone(phone string) error {
	digits := nonDigitsRegex.ReplaceAllString(phone, "")
	if len(digits) < 10 || len(digits) > 11 {
		return appErrors.Validation("invalid phone")
	}
	return nil
}

// LicensePlate accepts the old Brazilian format (LLLDDDD) and the Mercosul
// format (LLLDLDD). Comparison is case-insensitive and hyphens are ignored.
func LicensePlate(plate string) error {
	normalized := strings.ReplaceAll(strings.ToUpper(plate), "-", "")
	if !plateOldRegex.MatchString(normalized) && !plateMercosulRegex.MatchString(normalized) {
		return appErrors.Validation("invalid license plate")
	}
	return nil
}

// DateRange requires start < end and start not before today at midnight
// (starting today is allowed).
func DateRange(start, end time.Time) error {
	if !start.Before(end) {
		return appErrors.Validation("start date must be before end date")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if start.Before(today) {
		return appErrors.Validation("start date cannot be in the past")
	}

	return nil
}

func PositiveNumber(value float64, field string) error {
	if value <= 0 {
		return appErrors.Validation("%s must be greater than zero", field)
	}
	return nil
}

func Year(year int) error {
	currentYear := time.Now().Year()
	if year < 1900 || year > currentYear+1 {
		return appErrors.Validation("year must be between 1900 and %d", currentYear+1)
	}
	return nil
}

// ParseDate parses RFC 3339 timestamps and bare YYYY-MM-DD dates.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, appErrors.Validation("invalid date: %s", value)
	}
	return t, nil
}
