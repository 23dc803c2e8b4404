package repository

const keyPrefix = "ttt:"

func gameKey(sessionID string) string {
	return keyPrefix + sessionID + ":game"
}

func leaderboardKey(poolID string) string {
	return keyPrefix + poolID + ":leaderboard"
}

func matchmakingKey(poolID string) string {
	return keyPrefix + "matchmaking:" + poolID
}

const counterKey = keyPrefix + "count"
