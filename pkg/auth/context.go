package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const authorIDKey contextKey = "author_id"

// ErrAuthorIDNotFound is returned when no AuthorID exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrAuthorIDNotFound = errors.New("author_id not found in context")

// AuthorIDFromCtx extracts the authenticated author ID from the request context.
// Returns uuid.Nil and ErrAuthorIDNotFound if no AuthorID is set (unauthenticated request).
func AuthorIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	authorID, ok := ctx.Value(authorIDKey).(uuid.UUID)
	if !ok || authorID == uuid.Nil {
		return uuid.Nil, ErrAuthorIDNotFound
	}
	return authorID, nil
}

// WithAuthorID returns a new context with the given AuthorID attached.
// Used by authentication middleware after validating the session.
func WithAuthorID(ctx context.Context, authorID uuid.UUID) context.Context {
	return context.WithValue(ctx, authorIDKey, authorID)
}
