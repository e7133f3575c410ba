package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store persists uploaded documents and returns the key they can be
// referenced by. User and car documents go through the same store.
type Store interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// storageKey builds a timestamp-prefixed key for an uploaded file. The
// original filename is sanitized and a random suffix guards against two
// uploads of the same name in the same millisecond.
func storageKey(name string) string {
	base := name
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		base = "file"
	}

	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.New().String()[:8], base)
}
