package repositories

import (
	"errors"
	"strings"

	"agrisense-api/internal/core/domain"

	"gorm.io/gorm"
)

// translateError maps driver errors onto domain sentinels
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case isDuplicateKey(err):
		return domain.ErrDuplicateKey
	default:
		return err
	}
}

// isDuplicateKey covers drivers without an error translator.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate entry")
}
