package models

import "time"

// QuizSession is the full state of one timed attempt. The answers map always
// holds exactly one entry per question; nil means unanswered.
type QuizSession struct {
	ID                   string       `json:"id"`
	Category             string       `json:"category"`
	Questions            []Question   `json:"questions"`
	CurrentQuestionIndex int          `json:"current_question_index"`
	Answers              map[int]*int `json:"answers"`
	TimeRemaining        int          `json:"time_remaining"`
	IsComplete           bool         `json:"is_complete"`
	StartTime            time.Time    `json:"start_time"`
}

// Score is the result of comparing recorded answers against the correct
// options.
type Score struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}
