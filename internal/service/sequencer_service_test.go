package service

import (
	"testing"

	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBonusEligible(t *testing.T) {
	tests := []struct {
		name           string
		normalAnswered int64
		bonusAnswered  int64
		cadence        int
		want           bool
	}{
		{"no answers yet", 0, 0, 10, false},
		{"just below the first milestone", 9, 0, 10, false},
		{"first milestone reached", 10, 0, 10, true},
		{"milestone already claimed", 10, 1, 10, false},
		{"between milestones after claiming", 19, 1, 10, false},
		{"second milestone reached", 20, 1, 10, true},
		{"unclaimed milestones accumulate", 30, 1, 10, true},
		{"two unclaimed, one taken", 30, 2, 10, true},
		{"all milestones claimed", 30, 3, 10, false},
		{"custom cadence below", 14, 0, 15, false},
		{"custom cadence reached", 15, 0, 15, true},
		{"zero cadence disables bonus", 100, 0, 0, false},
		{"negative cadence disables bonus", 100, 0, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BonusEligible(tt.normalAnswered, tt.bonusAnswered, tt.cadence)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextBonusLockedBeforeMilestone(t *testing.T) {
	db, mock := newMockDB(t)

	// normal track count, then bonus track count
	mock.ExpectQuery("SELECT count(.+) FROM `answers` JOIN questions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("SELECT count(.+) FROM `answers` JOIN questions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	svc := NewSequencerService(repository.NewQuestionRepository(db), repository.NewAnswerRepository(db), 10)

	next, err := svc.Next(1, true)
	assert.Nil(t, next)
	assert.ErrorIs(t, err, util.ErrBonusLocked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNextReturnsFirstUnansweredNormalQuestion(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count(.+) FROM `answers` JOIN questions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT count(.+) FROM `answers` JOIN questions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT count(.+) FROM `questions`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT (.+) FROM `questions` WHERE is_bonus").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "points", "is_bonus", "position"}).
			AddRow(3, "Find the fountain", 5, false, 3))

	svc := NewSequencerService(repository.NewQuestionRepository(db), repository.NewAnswerRepository(db), 10)

	next, err := svc.Next(1, false)
	require.NoError(t, err)
	require.NotNil(t, next.Question)
	assert.Equal(t, uint(3), next.Question.ID)
	assert.Equal(t, 3, next.Number)
	assert.Equal(t, 12, next.Total)
	assert.False(t, next.Completed)
	assert.False(t, next.BonusAvailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNextReportsCompletionWhenTrackExhausted(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count(.+) FROM `answers` JOIN questions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT count(.+) FROM `answers` JOIN questions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	// milestone reached, so the bonus pool is probed before it is advertised
	mock.ExpectQuery("SELECT (.+) FROM `questions` WHERE is_bonus").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "points", "is_bonus", "position"}).
			AddRow(20, "Decode the plaque", 10, true, 1))
	mock.ExpectQuery("SELECT count(.+) FROM `questions`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT (.+) FROM `questions` WHERE is_bonus").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := NewSequencerService(repository.NewQuestionRepository(db), repository.NewAnswerRepository(db), 6)

	next, err := svc.Next(1, false)
	require.NoError(t, err)
	assert.Nil(t, next.Question)
	assert.True(t, next.Completed)
	assert.True(t, next.BonusAvailable)
	require.NoError(t, mock.ExpectationsWereMet())
}
