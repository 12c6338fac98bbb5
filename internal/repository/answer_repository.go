package repository

import (
	"errors"
	"strings"
	"time"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/util"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// Create inserts the pending answer. The composite unique index on
// (user_id, question_id) is the exclusivity guarantee: under concurrent
// duplicate submits exactly one insert succeeds and the rest surface
// ErrAlreadyAnswered.
func (r *AnswerRepository) Create(answer *model.Answer) error {
	err := r.DB.Create(answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
			return util.ErrAlreadyAnswered
		}
		return err
	}
	return nil
}

func (r *AnswerRepository) FindByID(id uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.DB.First(&answer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAnswerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// Review transitions a pending answer exactly once and, on accept, credits
// the snapshotted points to the submitting user in the same transaction.
// The state transition is a conditional update guarded on status='pending';
// of two concurrent reviews the first writer wins and the loser observes
// ErrAlreadyReviewed via the zero rows-affected count.
func (r *AnswerRepository) Review(answerID uint, accept bool, decidedAt time.Time) (*model.Answer, error) {
	var answer model.Answer

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&answer, answerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrAnswerNotFound
			}
			return err
		}

		status := model.AnswerRejected
		if accept {
			status = model.AnswerAccepted
		}

		res := tx.Model(&model.Answer{}).
			Where("id = ? AND status = ?", answerID, model.AnswerPending).
			Updates(map[string]interface{}{
				"status":      status,
				"reviewed_at": decidedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrAlreadyReviewed
		}

		answer.Status = status
		answer.ReviewedAt = &decidedAt

		if accept {
			return tx.Model(&model.User{}).
				Where("id = ?", answer.UserID).
				Update("points", gorm.Expr("points + ?", answer.PointsAwarded)).
				Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// CountByUser counts the user's answers in any review state on one track.
func (r *AnswerRepository) CountByUser(userID uint, isBonus bool) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Answer{}).
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("answers.user_id = ? AND questions.is_bonus = ?", userID, isBonus).
		Count(&count).Error
	return count, err
}

func (r *AnswerRepository) ListByUser(userID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Preload("Question").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) ExistsForQuestion(questionID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Answer{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	return count > 0, err
}

type scoreboardRow struct {
	UserID         uint
	Username       string
	TotalPoints    int
	NormalSolved   int
	BonusSolved    int
	LastSubmission *time.Time
}

// AggregateResults computes the scoreboard in a single statement so the
// read sees only committed review transitions, never half of one.
func (r *AnswerRepository) AggregateResults() ([]model.ScoreboardEntry, error) {
	var rows []scoreboardRow
	err := r.DB.Raw(`
		SELECT u.id AS user_id,
		       u.username AS username,
		       COALESCE(SUM(CASE WHEN a.status = 'accepted' THEN a.points_awarded ELSE 0 END), 0) AS total_points,
		       COALESCE(SUM(CASE WHEN a.status = 'accepted' AND q.is_bonus = 0 THEN 1 ELSE 0 END), 0) AS normal_solved,
		       COALESCE(SUM(CASE WHEN a.status = 'accepted' AND q.is_bonus = 1 THEN 1 ELSE 0 END), 0) AS bonus_solved,
		       MAX(CASE WHEN a.status = 'accepted' THEN a.created_at END) AS last_submission
		FROM users u
		LEFT JOIN answers a ON a.user_id = u.id
		LEFT JOIN questions q ON q.id = a.question_id
		WHERE u.role = 'participant' AND u.deleted_at IS NULL
		GROUP BY u.id, u.username
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]model.ScoreboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.ScoreboardEntry{
			UserID:         row.UserID,
			Username:       row.Username,
			TotalPoints:    row.TotalPoints,
			NormalSolved:   row.NormalSolved,
			BonusSolved:    row.BonusSolved,
			LastSubmission: row.LastSubmission,
		})
	}
	return entries, nil
}

// TeamSummaries backs the admin roster with per-team submission counts.
func (r *AnswerRepository) TeamSummaries() ([]model.TeamSummary, error) {
	var rows []model.TeamSummary
	err := r.DB.Raw(`
		SELECT u.id AS user_id,
		       u.username AS username,
		       u.points AS points,
		       COUNT(a.id) AS answers_submitted,
		       COALESCE(SUM(CASE WHEN a.status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_review,
		       u.created_at AS registered_at
		FROM users u
		LEFT JOIN answers a ON a.user_id = u.id
		WHERE u.role = 'participant' AND u.deleted_at IS NULL
		GROUP BY u.id, u.username, u.points, u.created_at
		ORDER BY u.username ASC
	`).Scan(&rows).Error
	return rows, err
}
