package model

import "time"

// ScoreboardEntry is derived per participant from accepted answers; it is
// never stored or independently mutated.
type ScoreboardEntry struct {
	UserID         uint       `json:"id"`
	Username       string     `json:"username"`
	TotalPoints    int        `json:"total_points"`
	NormalSolved   int        `json:"normal_solved"`
	BonusSolved    int        `json:"bonus_solved"`
	LastSubmission *time.Time `json:"last_submission,omitempty"`
	Rank           int        `json:"rank"`
}

// TeamSummary backs the admin team roster.
type TeamSummary struct {
	UserID           uint      `json:"id"`
	Username         string    `json:"username"`
	Points           int       `json:"points"`
	AnswersSubmitted int       `json:"answers_submitted"`
	PendingReview    int       `json:"pending_review"`
	RegisteredAt     time.Time `json:"registered_at"`
}

// ReviewedAnswer is one row of the admin review queue, carrying the
// denormalized question fields the panel renders.
type ReviewedAnswer struct {
	ID            uint         `json:"id"`
	QuestionID    uint         `json:"question_id"`
	QuestionText  string       `json:"question"`
	IsBonus       bool         `json:"is_bonus"`
	TextAnswer    string       `json:"text_answer,omitempty"`
	ImageURL      string       `json:"image_url,omitempty"`
	Status        AnswerStatus `json:"status"`
	PointsAwarded int          `json:"points_awarded"`
	SubmittedAt   time.Time    `json:"submitted_at"`
	ReviewedAt    *time.Time   `json:"reviewed_at,omitempty"`
}
