// Package shortcode generates random short codes for URL mappings.
package shortcode

import (
	"context"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vadimbarashkov/shortly/internal/metrics"
)

// alphabet is the 62-symbol code alphabet. With the default length of 6 the
// code space holds 62^6 (about 5.7e10) values, so random draws with a bounded
// retry stay collision-free for any realistic store size.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	defaultLength      = 6
	defaultMaxAttempts = 100
)

// ErrMaxAttemptsExceeded is returned when the maximum number of attempts for generating a unique short code is exceeded.
var ErrMaxAttemptsExceeded = errors.New("maximum attempts exceeded for generating unique short code")

// ExistsFunc reports whether a short code is already taken. The store's
// Exists method satisfies this signature.
type ExistsFunc func(ctx context.Context, shortCode string) (bool, error)

// Generator produces random alphanumeric short codes. Codes are independent
// across calls; uniqueness is only guaranteed by UniqueCode together with an
// existence oracle.
type Generator struct {
	length      int
	maxAttempts int
}

// New creates a Generator. Non-positive length or maxAttempts fall back to
// the defaults (6 characters, 100 attempts).
func New(length, maxAttempts int) *Generator {
	if length <= 0 {
		length = defaultLength
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	return &Generator{
		length:      length,
		maxAttempts: maxAttempts,
	}
}

// Code returns a random code of exactly the configured length, drawn
// uniformly from the alphanumeric alphabet.
func (g *Generator) Code() (string, error) {
	const op = "shortcode.Generator.Code"

	code, err := gonanoid.Generate(alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate short code: %w", op, err)
	}

	return code, nil
}

// UniqueCode draws random codes until it finds one for which exists reports
// false, bounding the search by the configured attempt budget. Exhausting the
// budget returns ErrMaxAttemptsExceeded rather than retrying forever.
func (g *Generator) UniqueCode(ctx context.Context, exists ExistsFunc) (string, error) {
	const op = "shortcode.Generator.UniqueCode"

	for i := 0; i < g.maxAttempts; i++ {
		code, err := g.Code()
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("%s: failed to check short code existence: %w", op, err)
		}

		if !taken {
			return code, nil
		}

		metrics.ShortCodeCollisionsTotal.Inc()
	}

	return "", fmt.Errorf("%s: %w", op, ErrMaxAttemptsExceeded)
}
