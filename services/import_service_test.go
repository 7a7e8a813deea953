package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionsSingleLine(t *testing.T) {
	questions, errors := ParseQuestions("Q,A,B,C,D,2,expl")

	require.Len(t, questions, 1)
	assert.Empty(t, errors)
	assert.Equal(t, "Q", questions[0].Question)
	assert.Equal(t, []string{"A", "B", "C", "D"}, questions[0].Options)
	assert.Equal(t, 1, questions[0].CorrectAnswer)
	assert.Equal(t, "expl", questions[0].Explanation)
}

func TestParseQuestionsExplanationOptional(t *testing.T) {
	questions, errors := ParseQuestions("Q,A,B,C,D,4")

	require.Len(t, questions, 1)
	assert.Empty(t, errors)
	assert.Equal(t, 3, questions[0].CorrectAnswer)
	assert.Equal(t, "", questions[0].Explanation)
}

func TestParseQuestionsSkipsHeader(t *testing.T) {
	content := "Question,Option 1,Option 2,Option 3,Option 4,Correct Answer (1-4),Explanation\nQ,A,B,C,D,1"
	questions, errors := ParseQuestions(content)

	require.Len(t, questions, 1)
	assert.Empty(t, errors)
	assert.Equal(t, "Q", questions[0].Question)
}

func TestParseQuestionsInvalidCorrectAnswer(t *testing.T) {
	questions, errors := ParseQuestions("Q,A,B,C,D,5")

	assert.Empty(t, questions)
	require.Len(t, errors, 1)
	assert.Equal(t, "Row 1: Invalid correct answer (must be 1-4)", errors[0])
}

func TestParseQuestionsNotEnoughColumns(t *testing.T) {
	questions, errors := ParseQuestions("Q,A,B,C")

	assert.Empty(t, questions)
	require.Len(t, errors, 1)
	assert.Equal(t, "Row 1: Not enough columns", errors[0])
}

func TestParseQuestionsBadLineDoesNotAbortBatch(t *testing.T) {
	content := "Q1,A,B,C,D,1\nQ2,A,B\nQ3,A,B,C,D,9\nQ4,A,B,C,D,3"
	questions, errors := ParseQuestions(content)

	require.Len(t, questions, 2)
	assert.Equal(t, "Q1", questions[0].Question)
	assert.Equal(t, "Q4", questions[1].Question)
	require.Len(t, errors, 2)
	assert.Equal(t, "Row 2: Not enough columns", errors[0])
	assert.Equal(t, "Row 3: Invalid correct answer (must be 1-4)", errors[1])
}

func TestParseQuestionsSemicolonDelimiter(t *testing.T) {
	questions, errors := ParseQuestions("Q;A;B;C;D;2;because")

	require.Len(t, questions, 1)
	assert.Empty(t, errors)
	assert.Equal(t, 1, questions[0].CorrectAnswer)
	assert.Equal(t, "because", questions[0].Explanation)
}

func TestParseQuestionsQuotedDelimiters(t *testing.T) {
	questions, errors := ParseQuestions(`"What is 1,000 + 1?","1,001","1,000","999","2,000",1`)

	require.Len(t, questions, 1)
	assert.Empty(t, errors)
	assert.Equal(t, "What is 1,000 + 1?", questions[0].Question)
	assert.Equal(t, []string{"1,001", "1,000", "999", "2,000"}, questions[0].Options)
}

func TestParseQuestionsMixedDelimitersOnOneLine(t *testing.T) {
	questions, errors := ParseQuestions("Q,A;B,C;D,2")

	require.Len(t, questions, 1)
	assert.Empty(t, errors)
	assert.Equal(t, []string{"A", "B", "C", "D"}, questions[0].Options)
}

func TestParseQuestionsSkipsBlankLines(t *testing.T) {
	content := "Q1,A,B,C,D,1\n\n   \nQ2,A,B,C,D,2\n"
	questions, errors := ParseQuestions(content)

	assert.Len(t, questions, 2)
	assert.Empty(t, errors)
}

func TestTemplateRoundTrips(t *testing.T) {
	questions, errors := ParseQuestions(Template())

	require.Len(t, questions, 2)
	assert.Empty(t, errors)
	assert.Equal(t, "What is 2 + 2?", questions[0].Question)
	assert.Equal(t, 1, questions[0].CorrectAnswer)
	assert.Equal(t, "Paris is the capital of France", questions[1].Explanation)
}
