package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/repository"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

// patch is implemented by every partial-update payload.
type patch interface {
	IsEmpty() bool
}

// Guard runs the checks every mutation passes before it reaches the store:
// payload validation, then existence of every referenced entity.
type Guard struct {
	validate *validator.Validate
	repos    repository.Repositories
}

// NewGuard builds a guard over the given repositories.
func NewGuard(repos repository.Repositories) *Guard {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return auth.PasswordFits(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Guard{validate: v, repos: repos}
}

// ValidateInput checks a create payload. Missing required fields are listed under
// details.missing, rule violations under details.invalid.
func (g *Guard) ValidateInput(input any) error {
	err := g.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewInternalError(err)
	}

	var missing []string
	invalid := map[string]string{}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		invalid[fieldPath(fe)] = rule
	}

	details := map[string]any{}
	if len(missing) > 0 {
		details["missing"] = missing
	}
	if len(invalid) > 0 {
		details["invalid"] = invalid
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields: "+strings.Join(missing, ", "), details)
	}
	return apperrors.NewValidationError("invalid fields: "+strings.Join(sortedKeys(invalid), ", "), details)
}

// ValidatePatch rejects an update that supplies nothing, then validates supplied fields.
func (g *Guard) ValidatePatch(p patch) error {
	if p.IsEmpty() {
		return apperrors.NewValidationError("no fields provided to update", nil)
	}
	return g.ValidateInput(p)
}

// RequireUser fails with "User not found" when id does not resolve.
func (g *Guard) RequireUser(ctx context.Context, id string) error {
	_, err := g.repos.Users.GetByID(ctx, id)
	return lookupError(err, repository.EntityUser)
}

// RequireHost fails with "Host not found" when id does not resolve.
func (g *Guard) RequireHost(ctx context.Context, id string) error {
	_, err := g.repos.Hosts.GetByID(ctx, id)
	return lookupError(err, repository.EntityHost)
}

// RequireProperty fails with "Property not found" when id does not resolve.
func (g *Guard) RequireProperty(ctx context.Context, id string) error {
	_, err := g.repos.Properties.GetByID(ctx, id)
	return lookupError(err, repository.EntityProperty)
}

// RequireAmenities checks each id in order and stops at the first missing one.
func (g *Guard) RequireAmenities(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := g.repos.Amenities.GetByID(ctx, id); err != nil {
			return lookupError(err, repository.EntityAmenity, "amenityId", id)
		}
	}
	return nil
}

func lookupError(err error, entity string, detail ...string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		var details map[string]any
		if len(detail) == 2 {
			details = map[string]any{detail[0]: detail[1]}
		}
		return apperrors.NewNotFound(entity, details)
	}
	return apperrors.NewInternalError(err)
}

var duplicateMessages = map[string]string{
	repository.EntityUser:    "User with this username or email already exists",
	repository.EntityHost:    "Host with this username or email already exists",
	repository.EntityAmenity: "Amenity with this name already exists",
}

// storeError maps repository failures for a mutation on entity.
func storeError(err error, entity string) error {
	if err == nil {
		return nil
	}
	var refErr *repository.ReferenceError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(entity, nil)
	case errors.As(err, &refErr):
		return apperrors.NewNotFound(refErr.Entity, nil)
	case errors.Is(err, repository.ErrDuplicate):
		msg, ok := duplicateMessages[entity]
		if !ok {
			msg = fmt.Sprintf("%s already exists", entity)
		}
		return apperrors.NewDuplicate(msg)
	default:
		return apperrors.NewInternalError(err)
	}
}

// fieldPath drops the root struct name from a namespace like "UserInput.amenityIds[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
