package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"testmaster/models"
	"testmaster/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const sessionTTL = 2 * time.Hour

// ErrInvalidOption is returned when a recorded answer points outside the
// question's option list.
var ErrInvalidOption = errors.New("option index out of range")

// SessionService owns the lifecycle of timed quiz attempts, one per session
// id. State lives as a JSON document in the KV store and is re-serialized on
// every mutation; all operations on an absent or sealed session are silent
// no-ops.
type SessionService struct {
	kv       storage.KV
	db       *gorm.DB
	duration int // seconds
}

func NewSessionService(kv storage.KV, db *gorm.DB, duration int) *SessionService {
	return &SessionService{
		kv:       kv,
		db:       db,
		duration: duration,
	}
}

// Start builds a fresh session for the category, replacing any existing state
// under the same id unconditionally. Unknown categories yield an empty
// question list.
func (s *SessionService) Start(ctx context.Context, id, category string) (*models.QuizSession, error) {
	if id == "" {
		id = uuid.NewString()
	}

	questions := QuestionsForCategory(category)
	answers := make(map[int]*int, len(questions))
	for _, q := range questions {
		answers[q.ID] = nil
	}

	session := &models.QuizSession{
		ID:                   id,
		Category:             category,
		Questions:            questions,
		CurrentQuestionIndex: 0,
		Answers:              answers,
		TimeRemaining:        s.duration,
		IsComplete:           false,
		StartTime:            time.Now(),
	}

	if err := s.store(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns the session state, or nil when the id holds no session.
func (s *SessionService) Get(ctx context.Context, id string) (*models.QuizSession, error) {
	data, err := s.kv.Get(ctx, sessionKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var session models.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("Failed to unmarshal session %s: %v", id, err)
		return nil, nil
	}
	return &session, nil
}

// SelectAnswer records the chosen option for a question. The session must
// exist, be active, and own the question; the option index must be within the
// question's option list.
func (s *SessionService) SelectAnswer(ctx context.Context, id string, questionID, optionIndex int) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if session == nil || session.IsComplete {
		return nil
	}

	question := findQuestion(session.Questions, questionID)
	if question == nil {
		return nil
	}
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return ErrInvalidOption
	}

	answer := optionIndex
	session.Answers[questionID] = &answer
	return s.store(ctx, session)
}

// GoToQuestion jumps to index when it is within bounds; out-of-range targets
// are ignored.
func (s *SessionService) GoToQuestion(ctx context.Context, id string, index int) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if session == nil || session.IsComplete {
		return nil
	}
	if index < 0 || index >= len(session.Questions) {
		return nil
	}

	session.CurrentQuestionIndex = index
	return s.store(ctx, session)
}

// NextQuestion advances the current index by one, clamped at the last
// question.
func (s *SessionService) NextQuestion(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if session == nil || session.IsComplete {
		return nil
	}
	if session.CurrentQuestionIndex >= len(session.Questions)-1 {
		return nil
	}

	session.CurrentQuestionIndex++
	return s.store(ctx, session)
}

// PreviousQuestion moves the current index back by one, clamped at zero.
func (s *SessionService) PreviousQuestion(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if session == nil || session.IsComplete {
		return nil
	}
	if session.CurrentQuestionIndex <= 0 {
		return nil
	}

	session.CurrentQuestionIndex--
	return s.store(ctx, session)
}

// Submit seals the session. Idempotent; the attempt record is written only on
// the first transition.
func (s *SessionService) Submit(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if session == nil || session.IsComplete {
		return nil
	}

	session.IsComplete = true
	if err := s.store(ctx, session); err != nil {
		return err
	}

	s.recordAttempt(session)
	return nil
}

// Reset discards the session entirely.
func (s *SessionService) Reset(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, sessionKey(id))
}

// SetTimeRemaining overwrites the countdown value. The ticking itself is
// driven externally; the store only accepts the new value, clamped at zero.
func (s *SessionService) SetTimeRemaining(ctx context.Context, id string, seconds int) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if session == nil || session.IsComplete {
		return nil
	}
	if seconds < 0 {
		seconds = 0
	}

	session.TimeRemaining = seconds
	return s.store(ctx, session)
}

// Score compares each recorded answer against its question's correct option.
// Absent sessions score zero across the board.
func (s *SessionService) Score(ctx context.Context, id string) (models.Score, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return models.Score{}, err
	}
	if session == nil {
		return models.Score{}, nil
	}
	return scoreSession(session), nil
}

func scoreSession(session *models.QuizSession) models.Score {
	correct := 0
	for _, q := range session.Questions {
		if answer := session.Answers[q.ID]; answer != nil && *answer == q.CorrectAnswer {
			correct++
		}
	}

	total := len(session.Questions)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(correct) / float64(total) * 100))
	}

	return models.Score{Correct: correct, Total: total, Percentage: percentage}
}

// recordAttempt persists the sealed session's result. Failures are logged,
// not surfaced; the session itself is already sealed.
func (s *SessionService) recordAttempt(session *models.QuizSession) {
	if s.db == nil {
		return
	}

	score := scoreSession(session)
	attempt := models.Attempt{
		SessionID:   session.ID,
		Category:    session.Category,
		Correct:     score.Correct,
		Total:       score.Total,
		Percentage:  score.Percentage,
		TimeTaken:   s.duration - session.TimeRemaining,
		StartedAt:   session.StartTime,
		CompletedAt: time.Now(),
	}

	if err := s.db.Create(&attempt).Error; err != nil {
		log.Printf("Failed to record attempt for session %s: %v", session.ID, err)
	}
}

// RecentAttempts returns the latest completed attempts, newest first.
func (s *SessionService) RecentAttempts(limit int) ([]models.Attempt, error) {
	if s.db == nil {
		return nil, nil
	}

	var attempts []models.Attempt
	err := s.db.Order("completed_at DESC").Limit(limit).Find(&attempts).Error
	return attempts, err
}

func (s *SessionService) store(ctx context.Context, session *models.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.kv.Set(ctx, sessionKey(session.ID), data, sessionTTL)
}

func sessionKey(id string) string {
	return "session:" + id
}

func findQuestion(questions []models.Question, id int) *models.Question {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}
