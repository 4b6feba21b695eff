package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a prefixed identifier such as "prod_5f2c...".
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
