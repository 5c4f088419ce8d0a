// Package service orchestrates the repositories for each resource: it
// turns missing rows into ResourceNotFound, guards against empty payloads,
// merges updates onto the stored entity and attaches hypermedia links.
package service

import (
	"errors"

	"github.com/aoideee/people-books-api/internal/data"
	domainerrors "github.com/aoideee/people-books-api/internal/errors"
)

// storeError converts a repository error into a domain error:
// data.ErrRecordNotFound becomes ResourceNotFound and any other failure
// becomes Internal. A nil error stays nil.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, data.ErrRecordNotFound):
		return domainerrors.ResourceNotFound(domainerrors.MsgResourceNotFound).WithCause(err)
	default:
		return domainerrors.Internal(err)
	}
}
