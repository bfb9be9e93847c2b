package dto

import (
	"strings"

	"github.com/oapi-codegen/nullable"

	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

// presence collects fields that were sent as explicit JSON null.
type presence struct {
	nulls []string
}

// field returns nil when v was absent, a pointer to its value when present.
// An explicit null is recorded and also yields nil.
func field[T any](p *presence, name string, v nullable.Nullable[T]) *T {
	if !v.IsSpecified() {
		return nil
	}
	if v.IsNull() {
		p.nulls = append(p.nulls, name)
		return nil
	}
	val := v.MustGet()
	return &val
}

func (p *presence) err() error {
	if len(p.nulls) == 0 {
		return nil
	}
	return apperrors.NewValidationError(
		"fields cannot be null: "+strings.Join(p.nulls, ", "),
		map[string]any{"null": p.nulls},
	)
}
