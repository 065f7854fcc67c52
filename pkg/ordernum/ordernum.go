package ordernum

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
)

const suffixAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
const suffixLength = 4

// Generate returns a short, time-ordered display token for an order:
// the millisecond timestamp in base36 plus a random suffix. Uniqueness
// is probabilistic; the database constraint plus regenerate-and-retry
// in the order builder covers collisions.
func Generate() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	buf := make([]byte, suffixLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unreachable; fall back to
		// the timestamp alone rather than panicking a sale.
		return "ORD-" + ts
	}
	suffix := make([]byte, suffixLength)
	for i, b := range buf {
		suffix[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}

	return "ORD-" + ts + "-" + string(suffix)
}
