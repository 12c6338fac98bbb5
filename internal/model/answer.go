package model

import "time"

type AnswerStatus string

const (
	AnswerPending  AnswerStatus = "pending"
	AnswerAccepted AnswerStatus = "accepted"
	AnswerRejected AnswerStatus = "rejected"
)

// Answer is one team's submission for one question. The composite unique
// index on (user_id, question_id) is the sole point of exclusivity
// enforcement: concurrent duplicate submits race on the constraint, not on
// an application-level check. PointsAwarded snapshots the question's points
// at submission so later edits never change a submission's value. Answers
// are never deleted; a row transitions out of pending exactly once.
//
// swagger:model Answer
type Answer struct {
	BaseModel
	UserID        uint         `gorm:"not null;uniqueIndex:idx_answers_user_question" json:"user_id"`
	QuestionID    uint         `gorm:"not null;uniqueIndex:idx_answers_user_question" json:"question_id"`
	User          User         `gorm:"foreignKey:UserID" json:"-"`
	Question      Question     `gorm:"foreignKey:QuestionID" json:"-"`
	TextAnswer    string       `gorm:"type:text" json:"text_answer,omitempty"`
	ImageURL      string       `gorm:"size:255" json:"image_url,omitempty"`
	Status        AnswerStatus `gorm:"type:enum('pending','accepted','rejected');default:'pending';index" json:"status"`
	PointsAwarded int          `gorm:"not null" json:"points_awarded"`
	ReviewedAt    *time.Time   `json:"reviewed_at,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}
