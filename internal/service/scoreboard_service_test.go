package service

import (
	"context"
	"testing"
	"time"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestRankEntriesOrdersByPointsThenTimeThenName(t *testing.T) {
	entries := []model.ScoreboardEntry{
		{Username: "delta", TotalPoints: 10, LastSubmission: ts("2026-08-30T10:30:00Z")},
		{Username: "bravo", TotalPoints: 25, LastSubmission: ts("2026-08-30T11:00:00Z")},
		{Username: "alpha", TotalPoints: 25, LastSubmission: ts("2026-08-30T10:00:00Z")},
		{Username: "echo", TotalPoints: 10, LastSubmission: ts("2026-08-30T10:30:00Z")},
		{Username: "charlie", TotalPoints: 0, LastSubmission: nil},
	}

	ranked := RankEntries(entries)

	names := make([]string, 0, len(ranked))
	for _, e := range ranked {
		names = append(names, e.Username)
	}
	// alpha beats bravo on the earlier accepted submission, delta beats echo
	// alphabetically on the exact tie
	assert.Equal(t, []string{"alpha", "bravo", "delta", "echo", "charlie"}, names)

	for i, e := range ranked {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestRankEntriesScoredBeforeUnscored(t *testing.T) {
	entries := []model.ScoreboardEntry{
		{Username: "idle", TotalPoints: 5, LastSubmission: nil},
		{Username: "active", TotalPoints: 5, LastSubmission: ts("2026-08-30T09:00:00Z")},
	}

	ranked := RankEntries(entries)

	assert.Equal(t, "active", ranked[0].Username)
	assert.Equal(t, "idle", ranked[1].Username)
}

func TestRankEntriesEmpty(t *testing.T) {
	assert.Empty(t, RankEntries(nil))
}

func TestResultsWithoutCache(t *testing.T) {
	db, mock := newMockDB(t)

	last := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT u.id AS user_id").
		WillReturnRows(sqlmock.NewRows([]string{
			"user_id", "username", "total_points", "normal_solved", "bonus_solved", "last_submission",
		}).
			AddRow(2, "seekers", 15, 3, 0, last).
			AddRow(1, "finders", 30, 5, 1, last))

	svc := NewScoreboardService(repository.NewAnswerRepository(db), nil, 5*time.Second)

	entries, err := svc.Results(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "finders", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 30, entries[0].TotalPoints)
	assert.Equal(t, "seekers", entries[1].Username)
	assert.Equal(t, 2, entries[1].Rank)
	require.NoError(t, mock.ExpectationsWereMet())
}
