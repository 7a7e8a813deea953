package handlers

import (
	"io"
	"net/http"

	"testmaster/services"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	sessionService *services.SessionService
}

func NewCatalogHandler(catalogService *services.CatalogService, sessionService *services.SessionService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		sessionService: sessionService,
	}
}

func (h *CatalogHandler) ListTests(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.ListTests())
}

// PublishedTests is the public read of the catalog, limited to tests flagged
// visible to quiz-takers.
func (h *CatalogHandler) PublishedTests(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.PublishedTests())
}

func (h *CatalogHandler) CreateTest(c *gin.Context) {
	var req services.CreateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	test := h.catalogService.CreateTest(&req)
	c.JSON(http.StatusCreated, test)
}

func (h *CatalogHandler) GetTest(c *gin.Context) {
	test := h.catalogService.GetTest(c.Param("id"))
	if test == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
		return
	}

	c.JSON(http.StatusOK, test)
}

func (h *CatalogHandler) UpdateTest(c *gin.Context) {
	id := c.Param("id")
	if h.catalogService.GetTest(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
		return
	}

	var patch services.TestPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.catalogService.UpdateTest(id, &patch)
	c.JSON(http.StatusOK, h.catalogService.GetTest(id))
}

func (h *CatalogHandler) DeleteTest(c *gin.Context) {
	id := c.Param("id")
	if h.catalogService.GetTest(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
		return
	}

	h.catalogService.DeleteTest(id)
	c.JSON(http.StatusOK, gin.H{"message": "Test deleted successfully"})
}

func (h *CatalogHandler) AddQuestion(c *gin.Context) {
	testID := c.Param("id")
	if h.catalogService.GetTest(testID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
		return
	}

	var input services.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.CorrectAnswer < 0 || input.CorrectAnswer >= len(input.Options) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Correct answer index out of range"})
		return
	}

	h.catalogService.AddQuestion(testID, &input)
	c.JSON(http.StatusCreated, h.catalogService.GetTest(testID))
}

func (h *CatalogHandler) AddBulkQuestions(c *gin.Context) {
	testID := c.Param("id")
	if h.catalogService.GetTest(testID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
		return
	}

	var inputs []services.QuestionInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, input := range inputs {
		if input.CorrectAnswer < 0 || input.CorrectAnswer >= len(input.Options) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Correct answer index out of range"})
			return
		}
	}

	h.catalogService.AddBulkQuestions(testID, inputs)
	c.JSON(http.StatusCreated, h.catalogService.GetTest(testID))
}

// ImportQuestions accepts a CSV upload and appends the rows that parse
// cleanly, reporting per-row errors alongside the success count.
func (h *CatalogHandler) ImportQuestions(c *gin.Context) {
	testID := c.Param("id")
	if h.catalogService.GetTest(testID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file required"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, services.ImportResult{
			Success: 0,
			Errors:  []string{"Failed to parse file. Please check the format."},
		})
		return
	}

	questions, importErrors := services.ParseQuestions(string(content))
	if len(questions) > 0 {
		h.catalogService.AddBulkQuestions(testID, questions)
	}

	c.JSON(http.StatusOK, services.ImportResult{
		Success: len(questions),
		Errors:  importErrors,
	})
}

// DownloadTemplate serves the fixed two-example CSV document.
func (h *CatalogHandler) DownloadTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="questions_template.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(services.Template()))
}

func (h *CatalogHandler) UpdateQuestion(c *gin.Context) {
	testID := c.Param("id")
	questionID := c.Param("questionId")
	if h.catalogService.GetTest(testID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
		return
	}

	var patch services.QuestionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.UpdateQuestion(testID, questionID, &patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Correct answer index out of range"})
		return
	}
	c.JSON(http.StatusOK, h.catalogService.GetTest(testID))
}

func (h *CatalogHandler) DeleteQuestion(c *gin.Context) {
	testID := c.Param("id")
	if h.catalogService.GetTest(testID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
		return
	}

	h.catalogService.DeleteQuestion(testID, c.Param("questionId"))
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

func (h *CatalogHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Stats())
}

func (h *CatalogHandler) RecentAttempts(c *gin.Context) {
	attempts, err := h.sessionService.RecentAttempts(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, attempts)
}
