package service

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"
	"treasure_hunt_backend/pkg/monitoring"
)

// AnswerService is the submission and review pipeline. Participants only
// ever create rows; admins only ever transition existing pending rows, so
// the two write paths cannot conflict beyond the constraints the
// repository enforces.
type AnswerService struct {
	AnswerRepo   *repository.AnswerRepository
	QuestionRepo *repository.QuestionRepository
	UserRepo     *repository.UserRepository
	Storage      *StorageService
}

func NewAnswerService(answerRepo *repository.AnswerRepository, questionRepo *repository.QuestionRepository, userRepo *repository.UserRepository, storage *StorageService) *AnswerService {
	return &AnswerService{
		AnswerRepo:   answerRepo,
		QuestionRepo: questionRepo,
		UserRepo:     userRepo,
		Storage:      storage,
	}
}

// Submit validates and persists a pending answer, snapshotting the
// question's current point value so later question edits cannot change what
// this submission is worth. Validation happens before the image upload so a
// rejected submit leaves no orphan blob.
func (s *AnswerService) Submit(ctx context.Context, userID, questionID uint, text string, image *multipart.FileHeader) (*model.Answer, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" && image == nil {
		monitoring.AnswerSubmissions.WithLabelValues("rejected").Inc()
		return nil, util.ErrEmptyAnswer
	}
	if question.RequiresImage && image == nil {
		monitoring.AnswerSubmissions.WithLabelValues("rejected").Inc()
		return nil, util.ErrMissingImage
	}

	imageURL := ""
	if image != nil {
		imageURL, err = s.Storage.UploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
	}

	answer := &model.Answer{
		UserID:        userID,
		QuestionID:    questionID,
		TextAnswer:    text,
		ImageURL:      imageURL,
		Status:        model.AnswerPending,
		PointsAwarded: question.Points,
	}
	if err := s.AnswerRepo.Create(answer); err != nil {
		monitoring.AnswerSubmissions.WithLabelValues("duplicate").Inc()
		return nil, err
	}

	monitoring.AnswerSubmissions.WithLabelValues("accepted").Inc()
	return answer, nil
}

// Review applies the exactly-once accept/reject transition.
func (s *AnswerService) Review(answerID uint, accept bool) (*model.Answer, error) {
	answer, err := s.AnswerRepo.Review(answerID, accept, time.Now())
	if err != nil {
		return nil, err
	}

	decision := "rejected"
	if accept {
		decision = "accepted"
	}
	monitoring.ReviewDecisions.WithLabelValues(decision).Inc()
	return answer, nil
}

// ListByUsername returns a team's submissions for the admin review queue,
// with the question fields denormalized for display.
func (s *AnswerService) ListByUsername(username string) ([]model.ReviewedAnswer, error) {
	user, err := s.UserRepo.FindByUsername(NormalizeUsername(username))
	if err != nil {
		return nil, err
	}

	answers, err := s.AnswerRepo.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}

	rows := make([]model.ReviewedAnswer, 0, len(answers))
	for _, a := range answers {
		rows = append(rows, model.ReviewedAnswer{
			ID:            a.ID,
			QuestionID:    a.QuestionID,
			QuestionText:  a.Question.Text,
			IsBonus:       a.Question.IsBonus,
			TextAnswer:    a.TextAnswer,
			ImageURL:      a.ImageURL,
			Status:        a.Status,
			PointsAwarded: a.PointsAwarded,
			SubmittedAt:   a.CreatedAt,
			ReviewedAt:    a.ReviewedAt,
		})
	}
	return rows, nil
}
