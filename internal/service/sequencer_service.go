package service

import (
	"treasure_hunt_backend/internal/model"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/internal/util"
)

// SequencerService picks the next question for a participant. It is a pure
// read over the question bank and the user's answer history; nothing here
// commits exclusivity, the answer table's unique index does that at submit.
type SequencerService struct {
	QuestionRepo *repository.QuestionRepository
	AnswerRepo   *repository.AnswerRepository

	// Cadence is the bonus milestone N: one bonus question is offerable
	// per N normal answers. Zero disables the bonus track.
	Cadence int
}

func NewSequencerService(questionRepo *repository.QuestionRepository, answerRepo *repository.AnswerRepository, cadence int) *SequencerService {
	return &SequencerService{
		QuestionRepo: questionRepo,
		AnswerRepo:   answerRepo,
		Cadence:      cadence,
	}
}

// NextQuestion describes the user's current position in a track. Number and
// Total are informational, for progress display only.
type NextQuestion struct {
	Question       *model.Question
	Number         int
	Total          int
	Completed      bool
	BonusAvailable bool
}

// BonusEligible is the milestone policy: eligibility accumulates, one bonus
// slot per cadence normal answers, counting bonus submissions in any review
// state. Unclaimed milestones carry forward; a user can never hold more
// bonus answers than milestones reached.
func BonusEligible(normalAnswered, bonusAnswered int64, cadence int) bool {
	if cadence <= 0 {
		return false
	}
	return bonusAnswered < normalAnswered/int64(cadence)
}

func (s *SequencerService) Next(userID uint, wantBonus bool) (*NextQuestion, error) {
	normalAnswered, err := s.AnswerRepo.CountByUser(userID, false)
	if err != nil {
		return nil, err
	}
	bonusAnswered, err := s.AnswerRepo.CountByUser(userID, true)
	if err != nil {
		return nil, err
	}

	eligible := BonusEligible(normalAnswered, bonusAnswered, s.Cadence)

	if wantBonus {
		if !eligible {
			return nil, util.ErrBonusLocked
		}
		return s.nextInTrack(userID, true, bonusAnswered, eligible)
	}

	// only advertise the bonus option while an unanswered bonus question
	// actually exists
	if eligible {
		bonus, err := s.QuestionRepo.FirstUnanswered(userID, true)
		if err != nil {
			return nil, err
		}
		eligible = bonus != nil
	}
	return s.nextInTrack(userID, false, normalAnswered, eligible)
}

func (s *SequencerService) nextInTrack(userID uint, isBonus bool, answered int64, eligible bool) (*NextQuestion, error) {
	total, err := s.QuestionRepo.CountByTrack(isBonus)
	if err != nil {
		return nil, err
	}

	question, err := s.QuestionRepo.FirstUnanswered(userID, isBonus)
	if err != nil {
		return nil, err
	}

	next := &NextQuestion{
		Number:         int(answered) + 1,
		Total:          int(total),
		BonusAvailable: eligible,
	}
	if question == nil {
		next.Completed = true
		return next, nil
	}
	next.Question = question
	return next, nil
}
