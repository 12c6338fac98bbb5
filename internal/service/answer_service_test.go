package service

import (
	"context"
	"errors"
	"testing"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnswerService(db *repositoryDeps) *AnswerService {
	return NewAnswerService(db.answers, db.questions, db.users, nil)
}

type repositoryDeps struct {
	answers   *repository.AnswerRepository
	questions *repository.QuestionRepository
	users     *repository.UserRepository
}

func newRepoDeps(t *testing.T) (*repositoryDeps, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return &repositoryDeps{
		answers:   repository.NewAnswerRepository(db),
		questions: repository.NewQuestionRepository(db),
		users:     repository.NewUserRepository(db),
	}, mock
}

func expectQuestion(mock sqlmock.Sqlmock, id uint, points int, requiresImage bool) {
	mock.ExpectQuery("SELECT (.+) FROM `questions` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "points", "requires_image", "is_bonus", "position"}).
			AddRow(id, "Find the fountain", points, requiresImage, false, 1))
}

func TestSubmitRejectsEmptyAnswer(t *testing.T) {
	deps, mock := newRepoDeps(t)
	expectQuestion(mock, 2, 5, false)

	svc := newAnswerService(deps)

	_, err := svc.Submit(context.Background(), 1, 2, "   ", nil)
	assert.ErrorIs(t, err, util.ErrEmptyAnswer)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRejectsMissingRequiredImage(t *testing.T) {
	deps, mock := newRepoDeps(t)
	expectQuestion(mock, 2, 5, true)

	svc := newAnswerService(deps)

	_, err := svc.Submit(context.Background(), 1, 2, "here it is", nil)
	assert.ErrorIs(t, err, util.ErrMissingImage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitUnknownQuestion(t *testing.T) {
	deps, mock := newRepoDeps(t)
	mock.ExpectQuery("SELECT (.+) FROM `questions` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := newAnswerService(deps)

	_, err := svc.Submit(context.Background(), 1, 99, "answer", nil)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitSnapshotsQuestionPoints(t *testing.T) {
	deps, mock := newRepoDeps(t)
	expectQuestion(mock, 2, 7, false)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `answers`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	svc := newAnswerService(deps)

	answer, err := svc.Submit(context.Background(), 1, 2, "  behind the statue  ", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, answer.PointsAwarded)
	assert.Equal(t, model.AnswerPending, answer.Status)
	assert.Equal(t, "behind the statue", answer.TextAnswer)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitDuplicateSurfacesAlreadyAnswered(t *testing.T) {
	deps, mock := newRepoDeps(t)
	expectQuestion(mock, 2, 5, false)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `answers`").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '1-2' for key 'answers.idx_answers_user_question'"))
	mock.ExpectRollback()

	svc := newAnswerService(deps)

	_, err := svc.Submit(context.Background(), 1, 2, "second try", nil)
	assert.ErrorIs(t, err, util.ErrAlreadyAnswered)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewAcceptCreditsSnapshottedPoints(t *testing.T) {
	deps, mock := newRepoDeps(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `answers` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "question_id", "status", "points_awarded"}).
			AddRow(10, 1, 2, "pending", 7))
	mock.ExpectExec("UPDATE `answers` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := newAnswerService(deps)

	answer, err := svc.Review(10, true)
	require.NoError(t, err)
	assert.Equal(t, model.AnswerAccepted, answer.Status)
	require.NotNil(t, answer.ReviewedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRejectDoesNotTouchScore(t *testing.T) {
	deps, mock := newRepoDeps(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `answers` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "question_id", "status", "points_awarded"}).
			AddRow(10, 1, 2, "pending", 7))
	mock.ExpectExec("UPDATE `answers` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := newAnswerService(deps)

	answer, err := svc.Review(10, false)
	require.NoError(t, err)
	assert.Equal(t, model.AnswerRejected, answer.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewSecondDecisionLoses(t *testing.T) {
	deps, mock := newRepoDeps(t)

	// the guarded update matches no pending row, so the transaction rolls back
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `answers` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "question_id", "status", "points_awarded"}).
			AddRow(10, 1, 2, "accepted", 7))
	mock.ExpectExec("UPDATE `answers` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	svc := newAnswerService(deps)

	_, err := svc.Review(10, false)
	assert.ErrorIs(t, err, util.ErrAlreadyReviewed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewUnknownAnswer(t *testing.T) {
	deps, mock := newRepoDeps(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `answers` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	svc := newAnswerService(deps)

	_, err := svc.Review(99, true)
	assert.ErrorIs(t, err, util.ErrAnswerNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
