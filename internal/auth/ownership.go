package auth

import (
	"fmt"

	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

// EnsureSelf rejects a self-scoped action unless the principal owns the resource.
// action is the verb used in the error message ("update", "delete").
func EnsureSelf(principal *Principal, resourceID, action string) error {
	if principal == nil {
		return apperrors.NewMissingCredential("Missing authorization token")
	}
	if principal.UserID != resourceID {
		return apperrors.NewForbidden(fmt.Sprintf("You can only %s your own account", action))
	}
	return nil
}
