package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/gdiniz/rental-cars/internal/errors"
)

func TestCPF(t *testing.T) {
	valid := []string{
		"52998224725",
		"529.982.247-25",
		"11144477735",
		"111.444.777-35",
	}
	for _, cpf := range valid {
		assert.NoError(t, CPF(cpf), cpf)
	}

	invalid := []string{
		"",
		"123",
		"12345678901",
		"11111111111",
		"00000000000",
		"529982247251", // too long
		"52998224724",  // wrong second check digit
		"52998224735",  // wrong first check digit
	}
	for _, cpf := range invalid {
		err := CPF(cpf)
		require.Error(t, err, cpf)
		assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
	}
}

// Flipping any single digit of a valid CPF must break at least one of the
// two check digits: the weights are all below 11, so a one-digit delta can
// never cancel out mod 11.
func TestCPFSingleDigitFlip(t *testing.T) {
	const cpf = "52998224725"

	for i := 0; i < len(cpf); i++ {
		for d := byte('0'); d <= '9'; d++ {
			if d == cpf[i] {
				continue
			}
			mutated := cpf[:i] + string(d) + cpf[i+1:]
			assert.Error(t, CPF(mutated), mutated)
		}
	}
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("user@example.com"))
	assert.NoError(t, Email("first.last+tag@sub.domain.org"))

	for _, email := range []string{"", "user", "user@", "@example.com", "user@example", "user name@example.com", "user@example.c"} {
		assert.Error(t, Email(email), email)
	}
}

func TestPhone(t *testing.T) {
	assert.NoError(t, Phone("11987654321"))
	assert.NoError(t, Phone("(11) 98765-4321"))
	assert.NoError(t, Phone("1187654321"))

	assert.Error(t, Phone("123456789"))
	assert.Error(t, Phone("123456789012"))
	assert.Error(t, Phone(""))
}

func TestLicensePlate(t *testing.T) {
	valid := []string{"ABC1234", "ABC-1234", "abc1234", "ABC1D23", "abc1d23"}
	for _, plate := range valid {
		assert.NoError(t, LicensePlate(plate), plate)
	}

	invalid := []string{"ABC123", "ABCDEFG", "1234567", "AB12345", "ABC12345", ""}
	for _, plate := range invalid {
		assert.Error(t, LicensePlate(plate), plate)
	}
}

func TestDateRange(t *testing.T) {
	today := time.Now().Truncate(24 * time.Hour)
	now := time.Now()
	tomorrow := now.AddDate(0, 0, 1)

	assert.NoError(t, DateRange(tomorrow, tomorrow.AddDate(0, 0, 5)))
	// starting today is allowed
	assert.NoError(t, DateRange(now, tomorrow))
	_ = today

	// start >= end
	assert.Error(t, DateRange(tomorrow, tomorrow))
	assert.Error(t, DateRange(tomorrow.AddDate(0, 0, 1), tomorrow))

	// start in the past
	assert.Error(t, DateRange(now.AddDate(0, 0, -1), tomorrow))
}

func TestPositiveNumber(t *testing.T) {
	assert.NoError(t, PositiveNumber(0.01, "value"))

	err := PositiveNumber(0, "daily rate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily rate")

	assert.Error(t, PositiveNumber(-10, "value"))
}

func TestYear(t *testing.T) {
	currentYear := time.Now().Year()

	assert.NoError(t, Year(1900))
	assert.NoError(t, Year(currentYear))
	assert.NoError(t, Year(currentYear+1))

	assert.Error(t, Year(1899))
	assert.Error(t, Year(currentYear+2))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2030-05-10")
	require.NoError(t, err)
	assert.Equal(t, 2030, d.Year())
	assert.Equal(t, time.May, d.Month())
	assert.Equal(t, 10, d.Day())

	d, err = ParseDate("2030-05-10T14:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, d.Hour())

	_, err = ParseDate("10/05/2030")
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}
