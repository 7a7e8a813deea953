package services

import (
	"context"
	"testing"

	"testmaster/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService() *SessionService {
	return NewSessionService(storage.NewMemoryKV(), nil, 600)
}

func TestStartBuildsFreshState(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	session, err := svc.Start(ctx, "", "math")
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "math", session.Category)
	assert.Len(t, session.Questions, 10)
	assert.Equal(t, 0, session.CurrentQuestionIndex)
	assert.Equal(t, 600, session.TimeRemaining)
	assert.False(t, session.IsComplete)
	assert.False(t, session.StartTime.IsZero())

	// One answer slot per question, all unanswered
	require.Len(t, session.Answers, len(session.Questions))
	for _, q := range session.Questions {
		answer, ok := session.Answers[q.ID]
		assert.True(t, ok)
		assert.Nil(t, answer)
	}
}

func TestStartUnknownCategoryIsEmpty(t *testing.T) {
	svc := newTestSessionService()

	session, err := svc.Start(context.Background(), "", "history")
	require.NoError(t, err)

	assert.Empty(t, session.Questions)
	assert.Empty(t, session.Answers)

	score, err := svc.Score(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, score.Total)
	assert.Equal(t, 0, score.Percentage)
}

func TestStartReplacesExistingSession(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	first, err := svc.Start(ctx, "tab-1", "math")
	require.NoError(t, err)
	require.NoError(t, svc.SelectAnswer(ctx, first.ID, first.Questions[0].ID, first.Questions[0].CorrectAnswer))

	second, err := svc.Start(ctx, "tab-1", "science")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "science", second.Category)

	loaded, err := svc.Get(ctx, "tab-1")
	require.NoError(t, err)
	assert.Equal(t, "science", loaded.Category)
	for _, answer := range loaded.Answers {
		assert.Nil(t, answer)
	}
}

func TestSelectAnswerScoring(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	session, err := svc.Start(ctx, "", "science")
	require.NoError(t, err)

	q := session.Questions[0]

	// Correct answer bumps the score by exactly one
	require.NoError(t, svc.SelectAnswer(ctx, session.ID, q.ID, q.CorrectAnswer))
	score, err := svc.Score(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, score.Correct)
	assert.Equal(t, 10, score.Total)
	assert.Equal(t, 10, score.Percentage)

	// Changing to a wrong option takes it back
	wrong := (q.CorrectAnswer + 1) % len(q.Options)
	require.NoError(t, svc.SelectAnswer(ctx, session.ID, q.ID, wrong))
	score, err = svc.Score(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, score.Correct)
}

func TestSelectAnswerRejectsOutOfRangeOption(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	session, err := svc.Start(ctx, "", "math")
	require.NoError(t, err)

	q := session.Questions[0]
	assert.ErrorIs(t, svc.SelectAnswer(ctx, session.ID, q.ID, len(q.Options)), ErrInvalidOption)
	assert.ErrorIs(t, svc.SelectAnswer(ctx, session.ID, q.ID, -1), ErrInvalidOption)

	loaded, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.Answers[q.ID])
}

func TestSelectAnswerUnknownQuestionIsNoOp(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	session, err := svc.Start(ctx, "", "math")
	require.NoError(t, err)

	require.NoError(t, svc.SelectAnswer(ctx, session.ID, 999, 0))

	loaded, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Answers, 10)
}

func TestNavigationBoundsSafe(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	session, err := svc.Start(ctx, "", "gk")
	require.NoError(t, err)

	// Previous at index 0 is a no-op
	require.NoError(t, svc.PreviousQuestion(ctx, session.ID))
	loaded, _ := svc.Get(ctx, session.ID)
	assert.Equal(t, 0, loaded.CurrentQuestionIndex)

	// Jump to the last question, next is a no-op
	last := len(session.Questions) - 1
	require.NoError(t, svc.GoToQuestion(ctx, session.ID, last))
	require.NoError(t, svc.NextQuestion(ctx, session.ID))
	loaded, _ = svc.Get(ctx, session.ID)
	assert.Equal(t, last, loaded.CurrentQuestionIndex)

	// Out-of-range jumps are ignored
	require.NoError(t, svc.GoToQuestion(ctx, session.ID, len(session.Questions)))
	require.NoError(t, svc.GoToQuestion(ctx, session.ID, -1))
	loaded, _ = svc.Get(ctx, session.ID)
	assert.Equal(t, last, loaded.CurrentQuestionIndex)
}

func TestNextThenPrevious(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	session, err := svc.Start(ctx, "", "english")
	require.NoError(t, err)

	require.NoError(t, svc.NextQuestion(ctx, session.ID))
	require.NoError(t, svc.NextQuestion(ctx, session.ID))
	require.NoError(t, svc.PreviousQuestion(ctx, session.ID))

	loaded, _ := svc.Get(ctx, session.ID)
	assert.Equal(t, 1, loaded.CurrentQuestionIndex)
}

func TestSubmitIsIdempotentAndSeals(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	session, err := svc.Start(ctx, "", "math")
	require.NoError(t, err)
	q := session.Questions[0]
	require.NoError(t, svc.SelectAnswer(ctx, session.ID, q.ID, q.CorrectAnswer))

	require.NoError(t, svc.Submit(ctx, session.ID))
	once, _ := svc.Get(ctx, session.ID)

	require.NoError(t, svc.Submit(ctx, session.ID))
	twice, _ := svc.Get(ctx, session.ID)
	assert.Equal(t, once, twice)
	assert.True(t, twice.IsComplete)

	// Sealed sessions reject no further mutation, silently
	require.NoError(t, svc.SelectAnswer(ctx, session.ID, q.ID, (q.CorrectAnswer+1)%len(q.Options)))
	require.NoError(t, svc.NextQuestion(ctx, session.ID))
	require.NoError(t, svc.SetTimeRemaining(ctx, session.ID, 5))

	loaded, _ := svc.Get(ctx, session.ID)
	assert.Equal(t, q.CorrectAnswer, *loaded.Answers[q.ID])
	assert.Equal(t, 0, loaded.CurrentQuestionIndex)
	assert.Equal(t, once.TimeRemaining, loaded.TimeRemaining)

	// Score stays callable after sealing
	score, err := svc.Score(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, score.Correct)
}

func TestSetTimeRemainingClampsAtZero(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	session, err := svc.Start(ctx, "", "math")
	require.NoError(t, err)

	require.NoError(t, svc.SetTimeRemaining(ctx, session.ID, 42))
	loaded, _ := svc.Get(ctx, session.ID)
	assert.Equal(t, 42, loaded.TimeRemaining)

	require.NoError(t, svc.SetTimeRemaining(ctx, session.ID, -3))
	loaded, _ = svc.Get(ctx, session.ID)
	assert.Equal(t, 0, loaded.TimeRemaining)
}

func TestResetDiscardsSession(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	session, err := svc.Start(ctx, "", "math")
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, session.ID))

	loaded, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	score, err := svc.Score(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, score.Correct)
	assert.Equal(t, 0, score.Total)
	assert.Equal(t, 0, score.Percentage)
}

func TestOperationsOnAbsentSessionAreSilent(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	assert.NoError(t, svc.SelectAnswer(ctx, "missing", 1, 0))
	assert.NoError(t, svc.GoToQuestion(ctx, "missing", 3))
	assert.NoError(t, svc.NextQuestion(ctx, "missing"))
	assert.NoError(t, svc.PreviousQuestion(ctx, "missing"))
	assert.NoError(t, svc.Submit(ctx, "missing"))
	assert.NoError(t, svc.SetTimeRemaining(ctx, "missing", 10))
}

func TestScorePercentageRounds(t *testing.T) {
	svc := newTestSessionService()
	ctx := context.Background()

	session, err := svc.Start(ctx, "", "gk")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		q := session.Questions[i]
		require.NoError(t, svc.SelectAnswer(ctx, session.ID, q.ID, q.CorrectAnswer))
	}

	score, err := svc.Score(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, score.Correct)
	assert.Equal(t, 30, score.Percentage)
}
