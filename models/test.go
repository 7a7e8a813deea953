package models

import "time"

// AdminQuestion belongs to exactly one AdminTest; questions are never shared
// across tests.
type AdminQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type AdminTest struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Category         string          `json:"category"`
	Duration         int             `json:"duration"` // minutes
	MarksPerQuestion int             `json:"marks_per_question"`
	NegativeMarking  float64         `json:"negative_marking"`
	Questions        []AdminQuestion `json:"questions"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	IsPublished      bool            `json:"is_published"`
}

// AdminStats is derived from the catalog on every read, never stored.
type AdminStats struct {
	TotalTests     int `json:"total_tests"`
	TotalStudents  int `json:"total_students"`
	TotalQuestions int `json:"total_questions"`
}
