package fileformat

import (
	"path/filepath"
	"strings"

	"github.com/twinj/uuid"
)

// UniqueFormat derives a collision-free object name for an uploaded file,
// keeping the original extension.
func UniqueFormat(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return uuid.NewV4().String() + ext
}
