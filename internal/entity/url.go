// Package entity defines the entities and errors used in the application.
// It includes the URL struct, which represents a shortened URL mapping, along
// with its associated metadata, and any relevant error definitions.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrShortCodeExists is returned when attempting to create a URL with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when a URL with the specified short code cannot be found.
	ErrURLNotFound = errors.New("url not found")
	// ErrInvalidURL is returned when the original URL fails validation after normalization.
	ErrInvalidURL = errors.New("invalid url")
)

// URL represents a shortened URL mapping.
//
// ShortCode and OriginalURL are immutable once the mapping is created.
// Clicks only ever grows, by exactly one per redirect.
type URL struct {
	ID          string    // ID is the unique identifier assigned to the mapping by the store.
	ShortCode   string    // ShortCode is the generated code used to shorten the original URL.
	OriginalURL string    // OriginalURL is the full URL that the short code resolves to.
	Clicks      int64     // Clicks is the number of times the shortened URL has been accessed.
	CreatedAt   time.Time // CreatedAt is the UTC timestamp when the mapping was created.
}
