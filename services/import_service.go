package services

import (
	"fmt"
	"strconv"
	"strings"
)

// ImportResult carries the outcome of a bulk CSV import: the questions that
// parsed cleanly and one human-readable error per rejected line.
type ImportResult struct {
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}

// ParseQuestions converts delimited text into question inputs. A line needs
// at least six fields (question, four options, 1-based correct answer); a
// seventh optional field is the explanation. Bad lines are reported
// individually and never abort the batch.
func ParseQuestions(content string) ([]QuestionInput, []string) {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	questions := []QuestionInput{}
	errors := []string{}

	// Skip the header row if present
	start := 0
	if len(lines) > 0 && strings.Contains(strings.ToLower(lines[0]), "question") {
		start = 1
	}

	for i := start; i < len(lines); i++ {
		values := splitLine(lines[i])
		if len(values) < 6 {
			errors = append(errors, fmt.Sprintf("Row %d: Not enough columns", i+1))
			continue
		}

		number, err := strconv.Atoi(values[5])
		if err != nil || number < 1 || number > 4 {
			errors = append(errors, fmt.Sprintf("Row %d: Invalid correct answer (must be 1-4)", i+1))
			continue
		}
		correct := number - 1

		explanation := ""
		if len(values) > 6 {
			explanation = values[6]
		}

		questions = append(questions, QuestionInput{
			Question:      values[0],
			Options:       []string{values[1], values[2], values[3], values[4]},
			CorrectAnswer: correct,
			Explanation:   explanation,
		})
	}

	return questions, errors
}

// splitLine splits one record into fields, accepting comma and semicolon as
// separators within the same line. A double quote toggles quoting; quoted
// separators are taken literally.
func splitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case (ch == ',' || ch == ';') && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())

	for i, field := range fields {
		fields[i] = strings.TrimSpace(field)
	}
	return fields
}

// Template is the downloadable two-example CSV document matching the import
// column layout.
func Template() string {
	return `Question,Option 1,Option 2,Option 3,Option 4,Correct Answer (1-4),Explanation
"What is 2 + 2?","3","4","5","6","2","2 + 2 equals 4"
"What is the capital of France?","London","Paris","Berlin","Madrid","2","Paris is the capital of France"`
}
