package engine

// Reward math for a finished duel. Pure so the payout rules are testable
// without a repository.

// MaxDailyDuelXP caps duel-derived experience per day regardless of wins.
const MaxDailyDuelXP = 100

// WinXP is the experience credited per victory, before the daily cap.
const WinXP = 10

// RollBounty draws the winner's currency prize. The range scales with the
// loser's lifetime experience but never drops below [100, 200].
func RollBounty(loserXP int) int {
	min := 100
	if v := loserXP / 10; v > min {
		min = v
	}
	max := 200
	if v := loserXP * 15 / 100; v > max {
		max = v
	}
	return randRange(min, max)
}

// XPGain returns the experience to credit given what the winner already
// earned today, so the daily total never exceeds MaxDailyDuelXP.
func XPGain(xpToday int) int {
	remaining := MaxDailyDuelXP - xpToday
	if remaining <= 0 {
		return 0
	}
	if remaining < WinXP {
		return remaining
	}
	return WinXP
}
