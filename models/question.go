package models

// Question is a quiz-side question served from the built-in bank. It is
// immutable once a session has loaded it.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Category      string   `json:"category"`
}
