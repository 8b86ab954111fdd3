package shortcode

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Code(t *testing.T) {
	t.Run("length and alphabet", func(t *testing.T) {
		gen := New(6, 100)

		for i := 0; i < 100; i++ {
			code, err := gen.Code()

			require.NoError(t, err)
			assert.Len(t, code, 6)
			for _, r := range code {
				assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q in code %q", r, code)
			}
		}
	})

	t.Run("custom length", func(t *testing.T) {
		gen := New(10, 100)

		code, err := gen.Code()

		require.NoError(t, err)
		assert.Len(t, code, 10)
	})

	t.Run("defaults on non-positive arguments", func(t *testing.T) {
		gen := New(0, -1)

		code, err := gen.Code()

		require.NoError(t, err)
		assert.Len(t, code, defaultLength)
		assert.Equal(t, defaultMaxAttempts, gen.maxAttempts)
	})

	t.Run("consecutive codes are distinct", func(t *testing.T) {
		gen := New(6, 100)

		// 1000 draws out of 62^6 values collide with probability ~1e-5,
		// a birthday-bound check rather than a hard guarantee.
		seen := make(map[string]struct{}, 1000)
		for i := 0; i < 1000; i++ {
			code, err := gen.Code()
			require.NoError(t, err)

			_, dup := seen[code]
			assert.False(t, dup, "duplicate code %q after %d draws", code, i)
			seen[code] = struct{}{}
		}
	})
}

func TestGenerator_UniqueCode(t *testing.T) {
	t.Run("first draw free", func(t *testing.T) {
		gen := New(6, 100)

		code, err := gen.UniqueCode(context.Background(), func(ctx context.Context, shortCode string) (bool, error) {
			return false, nil
		})

		require.NoError(t, err)
		assert.Len(t, code, 6)
	})

	t.Run("never returns a taken code", func(t *testing.T) {
		gen := New(6, 100)

		taken := make(map[string]struct{})
		exists := func(ctx context.Context, shortCode string) (bool, error) {
			_, ok := taken[shortCode]
			return ok, nil
		}

		for i := 0; i < 100; i++ {
			code, err := gen.UniqueCode(context.Background(), exists)

			require.NoError(t, err)
			_, dup := taken[code]
			assert.False(t, dup)
			taken[code] = struct{}{}
		}
	})

	t.Run("exhausts attempt budget", func(t *testing.T) {
		gen := New(6, 5)

		attempts := 0
		code, err := gen.UniqueCode(context.Background(), func(ctx context.Context, shortCode string) (bool, error) {
			attempts++
			return true, nil
		})

		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrMaxAttemptsExceeded)
		assert.Empty(t, code)
		assert.Equal(t, 5, attempts)
	})

	t.Run("oracle error", func(t *testing.T) {
		gen := New(6, 100)

		attempts := 0
		code, err := gen.UniqueCode(context.Background(), func(ctx context.Context, shortCode string) (bool, error) {
			attempts++
			return false, assert.AnError
		})

		assert.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, code)
		assert.Equal(t, 1, attempts)
	})
}
