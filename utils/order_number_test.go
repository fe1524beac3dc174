package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	createdAt := time.Date(2026, 8, 30, 12, 13, 14, 0, time.UTC)
	assert.Equal(t, "ORD-20260830121314-42", GenerateOrderNumber(createdAt, 42))
}

func TestGenerateOrderNumberUsesUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	createdAt := time.Date(2026, 8, 30, 17, 43, 14, 0, loc) // 12:13:14 UTC
	assert.Equal(t, "ORD-20260830121314-7", GenerateOrderNumber(createdAt, 7))
}

func TestGenerateOrderNumberInjectiveWithinSameSecond(t *testing.T) {
	// Orders created within the same second must still get distinct
	// numbers because the database key differs
	createdAt := time.Date(2026, 8, 30, 12, 13, 14, 0, time.UTC)
	seen := map[string]bool{}
	for id := uint(1); id <= 100; id++ {
		number := GenerateOrderNumber(createdAt, id)
		assert.False(t, seen[number], "Order number %s generated twice", number)
		seen[number] = true
	}
}

func TestGenerateOTP(t *testing.T) {
	pattern := regexp.MustCompile(`^[1-9][0-9]{5}$`)
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		assert.NoError(t, err)
		assert.Regexp(t, pattern, otp, "OTP should always be exactly six digits")
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"valid quantity", "3", 3},
		{"surrounding whitespace", " 2 ", 2},
		{"non-numeric defaults to one", "lots", 1},
		{"empty defaults to one", "", 1},
		{"zero defaults to one", "0", 1},
		{"negative defaults to one", "-4", 1},
		{"float is not an integer", "2.5", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseQuantity(tt.input))
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"valid price", "120", 120},
		{"decimal price", "49.50", 49.5},
		{"non-numeric defaults to zero", "free", 0},
		{"empty defaults to zero", "", 0},
		{"negative defaults to zero", "-10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePrice(tt.input))
		})
	}
}

func TestParseOptionalFloat(t *testing.T) {
	assert.Nil(t, ParseOptionalFloat(""))
	assert.Nil(t, ParseOptionalFloat("north"))

	lat := ParseOptionalFloat("12.9716")
	if assert.NotNil(t, lat) {
		assert.Equal(t, 12.9716, *lat)
	}
}
