package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	// OrderNumberPrefix is the prefix for every human-facing order number
	OrderNumberPrefix = "ORD"
	// OTPLength is the number of digits in a delivery confirmation code
	OTPLength = 6
)

// GenerateOrderNumber derives the human-facing order number from the
// creation time and the database-assigned key. Distinct keys yield distinct
// numbers even within the same second.
func GenerateOrderNumber(createdAt time.Time, id uint) string {
	return fmt.Sprintf("%s-%s-%d", OrderNumberPrefix, createdAt.UTC().Format("20060102150405"), id)
}

// GenerateOTP returns a random 6-digit delivery confirmation code
func GenerateOTP() (string, error) {
	// 100000..999999 so the code always has exactly six digits
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate confirmation code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// ParseQuantity parses a cart quantity string, defaulting to 1 on
// malformed or non-positive input
func ParseQuantity(s string) int {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || q < 1 {
		return 1
	}
	return q
}

// ParsePrice parses a cart price string, defaulting to 0 on malformed or
// negative input
func ParsePrice(s string) float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || p < 0 {
		return 0
	}
	return p
}

// ParseOptionalFloat parses an optional form value such as a latitude,
// returning nil when the value is empty or malformed
func ParseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
