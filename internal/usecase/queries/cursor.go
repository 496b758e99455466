package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"station-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
	cursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.New("invalid cursor")

type Cursor struct {
	After string `json:"after,omitempty"`
}

// Keyset is the position after which the next page of a
// newest-first (created_at DESC, id DESC) listing starts.
type Keyset struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// EncodeCursor uses microsecond precision to match PostgreSQL timestamps.
func EncodeCursor(k Keyset) *Cursor {
	raw := cursorVersionV1 + ":" + strconv.FormatInt(k.CreatedAt.UnixMicro(), 10) + "-" + k.ID.String()
	return &Cursor{After: base64.URLEncoding.EncodeToString([]byte(raw))}
}

func DecodeCursor(c *Cursor) (*Keyset, error) {
	if c == nil || c.After == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(c.After)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}

	payload, ok := strings.CutPrefix(string(decoded), cursorVersionV1+":")
	if !ok {
		return nil, ErrInvalidCursor
	}

	micros, idStr, ok := strings.Cut(payload, "-")
	if !ok {
		return nil, ErrInvalidCursor
	}
	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}

	return &Keyset{CreatedAt: time.UnixMicro(ts).UTC(), ID: id}, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
