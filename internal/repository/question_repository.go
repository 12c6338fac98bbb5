package repository

import (
	"errors"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) List() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Order("is_bonus ASC, position ASC, id ASC").Find(&questions).Error
	return questions, err
}

// NextPosition returns the next ordinal within one track.
func (r *QuestionRepository) NextPosition(isBonus bool) (int, error) {
	var max int
	err := r.DB.Model(&model.Question{}).
		Where("is_bonus = ?", isBonus).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *QuestionRepository) CountByTrack(isBonus bool) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("is_bonus = ?", isBonus).
		Count(&count).Error
	return count, err
}

// FirstUnanswered returns the lowest-position question of a track the user
// has no answer for, in any review state. Pure read; concurrent callers may
// see the same question, the unique answer index dedupes at submit.
func (r *QuestionRepository) FirstUnanswered(userID uint, isBonus bool) (*model.Question, error) {
	answered := r.DB.Model(&model.Answer{}).
		Select("question_id").
		Where("user_id = ?", userID)

	var question model.Question
	err := r.DB.
		Where("is_bonus = ?", isBonus).
		Where("id NOT IN (?)", answered).
		Order("position ASC, id ASC").
		First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}
