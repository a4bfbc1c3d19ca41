package keys

import (
	"sort"
	"strings"
	"time"
)

// DayBucket returns the UTC day number for t. Daily counters (duel throttle,
// duel XP) reset when the bucket changes.
func DayBucket(t time.Time) int64 {
	return t.UTC().Unix() / 86400
}

// PairKey produces a canonical key for an unordered pair of player UUIDs.
// Behavior: trims, sorts the two parts and joins with underscore. Suitable
// for stable log fields and per-pair guards.
func PairKey(a, b string) string {
	parts := []string{strings.TrimSpace(a), strings.TrimSpace(b)}
	sort.Strings(parts)
	return strings.Join(parts, "_")
}
