// Package fingerprint derives the dedup key for persisted articles.
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"time"
)

const dayLayout = "2006-01-02"

// Compute returns a stable hex digest of (headline, url, ingestion day).
// Each field is fed to the hash as a length-prefixed segment, so a delimiter
// character appearing inside a headline or URL cannot produce the same digest
// as a different triple. The day is the calendar date, not a timestamp:
// identical stories seen at different times within one day collide on purpose.
func Compute(headline, url string, day time.Time) string {
	h := sha256.New()
	writeSegment(h, headline)
	writeSegment(h, url)
	writeSegment(h, day.UTC().Format(dayLayout))
	return hex.EncodeToString(h.Sum(nil))
}

func writeSegment(h hash.Hash, field string) {
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(field)))
	_, _ = h.Write(length[:])
	_, _ = h.Write([]byte(field))
}
