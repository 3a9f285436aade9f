package user

import (
	"errors"
	"strings"

	usererrors "leaveflow/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapRepositoryError translates driver and gorm errors into the module's
// typed sentinels. Unknown errors pass through untouched so the handler
// layer masks them as internal instead of misreporting them.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usererrors.ErrEmailAlreadyRegistered
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_user_email" {
			return usererrors.ErrEmailAlreadyRegistered
		}
	}

	// Fallback for drivers that do not surface pgconn errors.
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_user_email") {
		return usererrors.ErrEmailAlreadyRegistered
	}

	return err
}
