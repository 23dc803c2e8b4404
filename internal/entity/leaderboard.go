package entity

import "sort"

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Wins     int64  `json:"wins"`
}

// Leaderboard maps identity to win count within one pairing pool.
type Leaderboard map[string]int64

// Wins - returns the identity's win count, 0 when absent.
func (that Leaderboard) Wins(identity string) int64 {
	return that[identity]
}

// RecordWin - adds exactly one win for the identity and returns the new count.
func (that Leaderboard) RecordWin(identity string) int64 {
	that[identity]++
	return that[identity]
}

// Top - entries ordered by wins descending, identity ascending on ties, truncated to limit.
func (that Leaderboard) Top(limit int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(that))
	for username, wins := range that {
		entries = append(entries, LeaderboardEntry{Username: username, Wins: wins})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].Username < entries[j].Username
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}
