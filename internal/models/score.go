package models

import "time"

// ScoreEntry is a single leaderboard record. Entries are immutable once
// created and have no identity beyond their fields; two identical entries
// are both legitimately retained.
type ScoreEntry struct {
	Username   string    `json:"username"`
	Score      int       `json:"score"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmitScoreRequest is the POST /api/scores payload.
// Score is a pointer so a missing field can be told apart from zero, and a
// float so non-integer values reach validation instead of failing to bind.
type SubmitScoreRequest struct {
	Username   string   `json:"username"`
	Score      *float64 `json:"score"`
	Difficulty string   `json:"difficulty"`
}

// SubmitScoreResponse is returned by POST /api/scores on success.
type SubmitScoreResponse struct {
	Message string     `json:"message"`
	Score   ScoreEntry `json:"score"`
}

// HealthStatus is returned by GET /api/health.
type HealthStatus struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	ScoresCount int       `json:"scores_count"`
}
