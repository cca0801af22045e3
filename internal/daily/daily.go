// Package daily derives the shared secret of the day and stores results.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/numberdle/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Secret returns the five-digit secret for the UTC day of t:
// HMAC-SHA256(salt, YYYY-MM-DD), first 8 bytes big-endian, mod 100000.
func Secret(t time.Time, salt string) string {
	return SecretFor(DateKey(t), salt)
}

// SecretFor is Secret for an already formatted date key.
func SecretFor(dateKey, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dateKey))
	n := binary.BigEndian.Uint64(h.Sum(nil)[:8])
	return game.FormatSecret(int(n % uint64(game.MaxSecret+1)))
}
