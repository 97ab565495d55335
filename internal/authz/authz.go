package authz

import (
	"errors"

	"github.com/confessly-dev/confessly/internal/models"
)

var ErrForbidden = errors.New("not the owner of this confession")

// AuthorizeMutation reports whether the acting user may edit or delete the
// confession. Callers load the confession first, so a missing record is
// reported as not found and never as forbidden.
func AuthorizeMutation(actingUserID uint, confession *models.Confession) error {
	if confession.OwnerID != actingUserID {
		return ErrForbidden
	}
	return nil
}
