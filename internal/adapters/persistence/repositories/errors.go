package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateKey reports whether err is a unique index violation. The mysql
// dialector translates these into gorm.ErrDuplicatedKey; the modernc sqlite
// driver does not, so its message is matched as well.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

// checkMatched resolves an UPDATE by id. A zero RowsAffected only means the
// row is missing when a count agrees: MySQL reports changed rows, so an
// update that writes the current values affects nothing.
func checkMatched(ctx context.Context, db *gorm.DB, result *gorm.DB, model interface{}, id string, notFound error) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
