package services

import (
	"fmt"
	"strings"

	"haven/internal/repositories"
)

// The service-level error taxonomy. NotFound and StoreUnavailable are the
// repository sentinels re-exported so callers only ever import this package.
var (
	ErrNotFound         = repositories.ErrRecordNotFound
	ErrStoreUnavailable = repositories.ErrStoreUnavailable
)

// FieldError describes a single violated field on a submitted draft.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every violated field of a create or update
// request, not just the first one, so a form can mark all of them at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}
