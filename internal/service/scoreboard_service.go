package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"

	"github.com/go-redis/redis/v8"
)

const scoreboardCacheKey = "hunt:scoreboard"

// ScoreboardService serves the poll-driven leaderboard. Results are derived
// from accepted answers only; the redis cache just bounds query load under
// the clients' 10-15s polling, it is never authoritative.
type ScoreboardService struct {
	AnswerRepo *repository.AnswerRepository
	Redis      *redis.Client
	CacheTTL   time.Duration
}

func NewScoreboardService(answerRepo *repository.AnswerRepository, rdb *redis.Client, cacheTTL time.Duration) *ScoreboardService {
	return &ScoreboardService{
		AnswerRepo: answerRepo,
		Redis:      rdb,
		CacheTTL:   cacheTTL,
	}
}

// RankEntries orders entries by the documented total order: higher points
// first, then earlier last accepted submission, then username. The sort is
// deterministic so equal polls render identically.
func RankEntries(entries []model.ScoreboardEntry) []model.ScoreboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		switch {
		case a.LastSubmission == nil && b.LastSubmission == nil:
			// fall through to username
		case a.LastSubmission == nil:
			return false
		case b.LastSubmission == nil:
			return true
		case !a.LastSubmission.Equal(*b.LastSubmission):
			return a.LastSubmission.Before(*b.LastSubmission)
		}
		return a.Username < b.Username
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (s *ScoreboardService) Results(ctx context.Context) ([]model.ScoreboardEntry, error) {
	if s.cacheEnabled() {
		if cached, err := s.Redis.Get(ctx, scoreboardCacheKey).Bytes(); err == nil {
			var entries []model.ScoreboardEntry
			if json.Unmarshal(cached, &entries) == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.AnswerRepo.AggregateResults()
	if err != nil {
		return nil, err
	}
	entries = RankEntries(entries)

	if s.cacheEnabled() {
		if payload, err := json.Marshal(entries); err == nil {
			// best effort; a failed cache write never fails the read
			s.Redis.Set(ctx, scoreboardCacheKey, payload, s.CacheTTL)
		}
	}
	return entries, nil
}

func (s *ScoreboardService) Teams() ([]model.TeamSummary, error) {
	return s.AnswerRepo.TeamSummaries()
}

func (s *ScoreboardService) cacheEnabled() bool {
	return s.Redis != nil && s.CacheTTL > 0
}
