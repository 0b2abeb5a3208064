package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is wrapped by repositories when a lookup resolves no row.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err means the requested row does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
