package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"testmaster/models"
	"testmaster/storage"
)

const catalogKey = "testmaster:admin:catalog"

// ErrInvalidCorrectAnswer is returned when a question mutation would leave
// the correct-option index outside the option list.
var ErrInvalidCorrectAnswer = errors.New("correct answer index out of range")

// Simulated figure shown on the dashboard; there is no enrolment backend.
const simulatedStudents = 1247

// CatalogService is the authoritative store of admin-authored tests. The full
// catalog is serialized to the KV store under a single key on every mutation;
// an empty or corrupt document is replaced wholesale by the built-in sample
// catalog at load time.
type CatalogService struct {
	mu    sync.RWMutex
	kv    storage.KV
	tests []models.AdminTest
}

type CreateTestRequest struct {
	Title            string  `json:"title" binding:"required"`
	Category         string  `json:"category" binding:"required"`
	Duration         int     `json:"duration" binding:"required,min=1"`
	MarksPerQuestion int     `json:"marks_per_question" binding:"required,min=1"`
	NegativeMarking  float64 `json:"negative_marking"`
	IsPublished      bool    `json:"is_published"`
}

// TestPatch carries a sparse update; nil fields are left untouched.
type TestPatch struct {
	Title            *string  `json:"title"`
	Category         *string  `json:"category"`
	Duration         *int     `json:"duration"`
	MarksPerQuestion *int     `json:"marks_per_question"`
	NegativeMarking  *float64 `json:"negative_marking"`
	IsPublished      *bool    `json:"is_published"`
}

type QuestionInput struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer" binding:"min=0"`
	Explanation   string   `json:"explanation"`
}

// QuestionPatch carries a sparse question update; nil fields are left
// untouched.
type QuestionPatch struct {
	Question      *string   `json:"question"`
	Options       *[]string `json:"options"`
	CorrectAnswer *int      `json:"correct_answer"`
	Explanation   *string   `json:"explanation"`
}

func NewCatalogService(kv storage.KV) *CatalogService {
	s := &CatalogService{kv: kv}
	s.load()
	return s
}

func (s *CatalogService) load() {
	data, err := s.kv.Get(context.Background(), catalogKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Failed to load catalog: %v", err)
		}
		s.tests = sampleCatalog()
		return
	}

	var tests []models.AdminTest
	if err := json.Unmarshal(data, &tests); err != nil {
		log.Printf("Corrupt catalog document, falling back to sample catalog: %v", err)
		s.tests = sampleCatalog()
		return
	}
	s.tests = tests
}

// persist writes the whole catalog under the fixed key. Best effort: a write
// failure is logged and the in-memory catalog stays authoritative.
func (s *CatalogService) persist() {
	data, err := json.Marshal(s.tests)
	if err != nil {
		log.Printf("Failed to marshal catalog: %v", err)
		return
	}
	if err := s.kv.Set(context.Background(), catalogKey, data, 0); err != nil {
		log.Printf("Failed to persist catalog: %v", err)
	}
}

// ListTests returns a snapshot of the full catalog. Snapshots are deep
// copies; mutating one never touches the store.
func (s *CatalogService) ListTests() []models.AdminTest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AdminTest, len(s.tests))
	for i := range s.tests {
		out[i] = cloneTest(s.tests[i])
	}
	return out
}

// PublishedTests returns only the tests flagged visible to quiz-takers.
func (s *CatalogService) PublishedTests() []models.AdminTest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.AdminTest{}
	for i := range s.tests {
		if s.tests[i].IsPublished {
			out = append(out, cloneTest(s.tests[i]))
		}
	}
	return out
}

// GetTest returns a copy of the matching test, or nil when the id is
// unknown.
func (s *CatalogService) GetTest(id string) *models.AdminTest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.tests {
		if s.tests[i].ID == id {
			test := cloneTest(s.tests[i])
			return &test
		}
	}
	return nil
}

func cloneTest(test models.AdminTest) models.AdminTest {
	out := test
	out.Questions = make([]models.AdminQuestion, len(test.Questions))
	copy(out.Questions, test.Questions)
	for i := range out.Questions {
		options := make([]string, len(out.Questions[i].Options))
		copy(options, out.Questions[i].Options)
		out.Questions[i].Options = options
	}
	return out
}

// CreateTest appends a new test with an empty question list and returns it so
// the caller can navigate to it immediately.
func (s *CatalogService) CreateTest(req *CreateTestRequest) models.AdminTest {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	test := models.AdminTest{
		ID:               generateID(),
		Title:            req.Title,
		Category:         req.Category,
		Duration:         req.Duration,
		MarksPerQuestion: req.MarksPerQuestion,
		NegativeMarking:  req.NegativeMarking,
		Questions:        []models.AdminQuestion{},
		CreatedAt:        now,
		UpdatedAt:        now,
		IsPublished:      req.IsPublished,
	}

	s.tests = append(s.tests, test)
	s.persist()
	return test
}

// UpdateTest applies the patch field-by-field and refreshes UpdatedAt. No-op
// for an unknown id.
func (s *CatalogService) UpdateTest(id string, patch *TestPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tests {
		if s.tests[i].ID != id {
			continue
		}
		test := &s.tests[i]
		if patch.Title != nil {
			test.Title = *patch.Title
		}
		if patch.Category != nil {
			test.Category = *patch.Category
		}
		if patch.Duration != nil {
			test.Duration = *patch.Duration
		}
		if patch.MarksPerQuestion != nil {
			test.MarksPerQuestion = *patch.MarksPerQuestion
		}
		if patch.NegativeMarking != nil {
			test.NegativeMarking = *patch.NegativeMarking
		}
		if patch.IsPublished != nil {
			test.IsPublished = *patch.IsPublished
		}
		test.UpdatedAt = time.Now()
		s.persist()
		return
	}
}

// DeleteTest removes the test and, with it, every question it owns. No-op for
// an unknown id.
func (s *CatalogService) DeleteTest(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tests {
		if s.tests[i].ID == id {
			s.tests = append(s.tests[:i], s.tests[i+1:]...)
			s.persist()
			return
		}
	}
}

// AddQuestion appends one question to the test and refreshes UpdatedAt.
func (s *CatalogService) AddQuestion(testID string, input *QuestionInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tests {
		if s.tests[i].ID != testID {
			continue
		}
		s.tests[i].Questions = append(s.tests[i].Questions, newQuestion(input))
		s.tests[i].UpdatedAt = time.Now()
		s.persist()
		return
	}
}

// AddBulkQuestions appends many questions at once, each with its own fresh
// id, refreshing UpdatedAt once for the whole batch.
func (s *CatalogService) AddBulkQuestions(testID string, inputs []QuestionInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tests {
		if s.tests[i].ID != testID {
			continue
		}
		for j := range inputs {
			s.tests[i].Questions = append(s.tests[i].Questions, newQuestion(&inputs[j]))
		}
		s.tests[i].UpdatedAt = time.Now()
		s.persist()
		return
	}
}

// UpdateQuestion applies the patch to the question located by the composite
// (test, question) key. No-op when either is unknown. The patched
// correct-option index must stay within the patched option list.
func (s *CatalogService) UpdateQuestion(testID, questionID string, patch *QuestionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tests {
		if s.tests[i].ID != testID {
			continue
		}
		for j := range s.tests[i].Questions {
			if s.tests[i].Questions[j].ID != questionID {
				continue
			}
			question := &s.tests[i].Questions[j]

			options := question.Options
			if patch.Options != nil {
				options = *patch.Options
			}
			correct := question.CorrectAnswer
			if patch.CorrectAnswer != nil {
				correct = *patch.CorrectAnswer
			}
			if correct < 0 || correct >= len(options) {
				return ErrInvalidCorrectAnswer
			}

			if patch.Question != nil {
				question.Question = *patch.Question
			}
			question.Options = options
			question.CorrectAnswer = correct
			if patch.Explanation != nil {
				question.Explanation = *patch.Explanation
			}
			s.tests[i].UpdatedAt = time.Now()
			s.persist()
			return nil
		}
		return nil
	}
	return nil
}

// DeleteQuestion removes the question located by the composite key. No-op
// when either id is unknown.
func (s *CatalogService) DeleteQuestion(testID, questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tests {
		if s.tests[i].ID != testID {
			continue
		}
		for j := range s.tests[i].Questions {
			if s.tests[i].Questions[j].ID == questionID {
				s.tests[i].Questions = append(s.tests[i].Questions[:j], s.tests[i].Questions[j+1:]...)
				s.tests[i].UpdatedAt = time.Now()
				s.persist()
				return
			}
		}
		return
	}
}

// Stats recomputes the derived dashboard figures on every call.
func (s *CatalogService) Stats() models.AdminStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totalQuestions := 0
	for _, test := range s.tests {
		totalQuestions += len(test.Questions)
	}

	return models.AdminStats{
		TotalTests:     len(s.tests),
		TotalStudents:  simulatedStudents,
		TotalQuestions: totalQuestions,
	}
}

func newQuestion(input *QuestionInput) models.AdminQuestion {
	return models.AdminQuestion{
		ID:            generateID(),
		Question:      input.Question,
		Options:       input.Options,
		CorrectAnswer: input.CorrectAnswer,
		Explanation:   input.Explanation,
	}
}

// generateID derives an id from the current time plus a random suffix. Unique
// enough for a single writer; not collision-proof across distributed writers.
func generateID() string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + hex.EncodeToString(suffix)
}

func sampleCatalog() []models.AdminTest {
	return []models.AdminTest{
		{
			ID:               "test-1",
			Title:            "Mathematics Fundamentals",
			Category:         "math",
			Duration:         30,
			MarksPerQuestion: 4,
			NegativeMarking:  1,
			Questions: []models.AdminQuestion{
				{
					ID:            "q1",
					Question:      "What is the value of x if 2x + 5 = 15?",
					Options:       []string{"3", "5", "7", "10"},
					CorrectAnswer: 1,
					Explanation:   "2x + 5 = 15, so 2x = 10, therefore x = 5",
				},
				{
					ID:            "q2",
					Question:      "What is the area of a circle with radius 7 cm? (Use π = 22/7)",
					Options:       []string{"154 cm²", "144 cm²", "132 cm²", "168 cm²"},
					CorrectAnswer: 0,
					Explanation:   "Area = πr² = (22/7) × 7² = 154 cm²",
				},
			},
			CreatedAt:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			IsPublished: true,
		},
		{
			ID:               "test-2",
			Title:            "General Science Quiz",
			Category:         "science",
			Duration:         20,
			MarksPerQuestion: 2,
			NegativeMarking:  0.5,
			Questions: []models.AdminQuestion{
				{
					ID:            "q1",
					Question:      "What is the chemical symbol for Gold?",
					Options:       []string{"Go", "Gd", "Au", "Ag"},
					CorrectAnswer: 2,
					Explanation:   "Au comes from the Latin word 'Aurum' meaning gold",
				},
			},
			CreatedAt:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			IsPublished: true,
		},
		{
			ID:               "test-3",
			Title:            "World Knowledge Challenge",
			Category:         "gk",
			Duration:         15,
			MarksPerQuestion: 1,
			NegativeMarking:  0,
			Questions:        []models.AdminQuestion{},
			CreatedAt:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			IsPublished:      false,
		},
	}
}
