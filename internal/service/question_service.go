package service

import (
	"context"
	"mime/multipart"
	"strings"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"
)

// QuestionService is the admin-only question bank. Sequencing never depends
// on it beyond the persisted rows, and edits here can never reach already
// submitted answers because those carry their own point snapshot.
type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	AnswerRepo   *repository.AnswerRepository
	Storage      *StorageService
}

func NewQuestionService(questionRepo *repository.QuestionRepository, answerRepo *repository.AnswerRepository, storage *StorageService) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		AnswerRepo:   answerRepo,
		Storage:      storage,
	}
}

type QuestionInput struct {
	Text          string
	Points        int
	RequiresImage bool
	IsBonus       bool
	Image         *multipart.FileHeader
}

func (s *QuestionService) Create(ctx context.Context, input QuestionInput) (*model.Question, error) {
	input.Text = strings.TrimSpace(input.Text)
	if input.Text == "" {
		return nil, util.ErrEmptyQuestion
	}
	if input.Points <= 0 {
		return nil, util.ErrInvalidPoints
	}

	imageURL := ""
	if input.Image != nil {
		url, err := s.Storage.UploadImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	position, err := s.QuestionRepo.NextPosition(input.IsBonus)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		Text:          input.Text,
		Points:        input.Points,
		RequiresImage: input.RequiresImage,
		IsBonus:       input.IsBonus,
		ImageURL:      imageURL,
		Position:      position,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// Update edits the question definition. Point snapshots on existing answers
// are untouched by design.
func (s *QuestionService) Update(ctx context.Context, id uint, input QuestionInput) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	input.Text = strings.TrimSpace(input.Text)
	if input.Text == "" {
		return nil, util.ErrEmptyQuestion
	}
	if input.Points <= 0 {
		return nil, util.ErrInvalidPoints
	}

	if input.Image != nil {
		url, err := s.Storage.UploadImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		question.ImageURL = url
	}

	question.Text = input.Text
	question.Points = input.Points
	question.RequiresImage = input.RequiresImage

	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

// Delete refuses to remove a question any answer references, preserving
// review history; unanswered questions soft-delete.
func (s *QuestionService) Delete(id uint) error {
	if _, err := s.QuestionRepo.FindByID(id); err != nil {
		return err
	}

	inUse, err := s.AnswerRepo.ExistsForQuestion(id)
	if err != nil {
		return err
	}
	if inUse {
		return util.ErrQuestionInUse
	}

	return s.QuestionRepo.Delete(id)
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	return s.QuestionRepo.FindByID(id)
}

func (s *QuestionService) List() ([]model.Question, error) {
	return s.QuestionRepo.List()
}
