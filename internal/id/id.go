package id

import (
	"strings"

	"github.com/google/uuid"
)

// New creates a prefixed identifier such as "quiz_9f1c2a7b4d3e".
// The random part is the first 12 hex characters of a v4 UUID, which is
// plenty for entities that only live for the process lifetime.
func New(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + raw[:12]
}
