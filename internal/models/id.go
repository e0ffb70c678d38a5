package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a prefixed document ID such as "order_3f9c2a81b04d".
func NewID(prefix string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s_%s", prefix, hex[:12])
}
