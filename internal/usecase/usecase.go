// Package usecase implements the business logic for shortening and resolving
// URLs on top of a mapping repository and a short code generator.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/vadimbarashkov/shortly/internal/entity"
	"github.com/vadimbarashkov/shortly/internal/shortcode"
)

type urlRepository interface {
	Save(ctx context.Context, shortCode, originalURL string) (*entity.URL, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	RetrieveAndUpdateStats(ctx context.Context, shortCode string) (*entity.URL, error)
	Exists(ctx context.Context, shortCode string) (bool, error)
}

type codeGenerator interface {
	UniqueCode(ctx context.Context, exists shortcode.ExistsFunc) (string, error)
}

// URLUseCase provides the operations behind the HTTP API: shortening a URL,
// resolving a short code for redirection and reading mapping statistics.
type URLUseCase struct {
	urlRepo urlRepository
	gen     codeGenerator
}

// New creates a URLUseCase backed by the given repository and generator.
func New(urlRepo urlRepository, gen codeGenerator) *URLUseCase {
	return &URLUseCase{
		urlRepo: urlRepo,
		gen:     gen,
	}
}

// ShortenURL normalizes and validates rawURL, generates a unique short code
// using the repository as the uniqueness oracle and stores the new mapping.
// It returns entity.ErrInvalidURL for unusable input and
// shortcode.ErrMaxAttemptsExceeded when no free code could be found.
func (uc *URLUseCase) ShortenURL(ctx context.Context, rawURL string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURL"

	originalURL, err := normalizeURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Exists is checked inside UniqueCode, but a concurrent shorten may
	// claim the code between the check and the insert. Save rejects the
	// duplicate, so draw a fresh code and try again.
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		shortCode, err := uc.gen.UniqueCode(ctx, uc.urlRepo.Exists)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		u, err := uc.urlRepo.Save(ctx, shortCode, originalURL)
		if err != nil {
			if errors.Is(err, entity.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return u, nil
	}

	return nil, fmt.Errorf("%s: %w", op, shortcode.ErrMaxAttemptsExceeded)
}

// ResolveShortCode returns the mapping for shortCode, counted as one redirect.
func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	u, err := uc.urlRepo.RetrieveAndUpdateStats(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return u, nil
}

// GetURLStats returns the mapping for shortCode without touching its click
// counter.
func (uc *URLUseCase) GetURLStats(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.GetURLStats"

	u, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return u, nil
}

// normalizeURL trims rawURL, prepends https:// when no scheme is present and
// validates that the result is an http(s) URL with a host.
func normalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", entity.ErrInvalidURL
	}

	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", entity.ErrInvalidURL
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", entity.ErrInvalidURL
	}

	if parsed.Host == "" {
		return "", entity.ErrInvalidURL
	}

	return rawURL, nil
}
