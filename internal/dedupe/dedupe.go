package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent duel bookkeeping. Using a centralized singleflight.Group
// ensures a finished duel settles exactly once even when the deadline
// scanner and a late decision race on the same session.

import "golang.org/x/sync/singleflight"

// SettleGroup deduplicates settlement runs keyed by session id.
var SettleGroup singleflight.Group
