package handlers

import (
	"errors"
	"net/http"

	"testmaster/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
	hub            *services.Hub
}

func NewSessionHandler(sessionService *services.SessionService, hub *services.Hub) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		hub:            hub,
	}
}

type StartSessionRequest struct {
	Category  string `json:"category" binding:"required"`
	SessionID string `json:"session_id"`
}

type AnswerRequest struct {
	QuestionID  int  `json:"question_id" binding:"required"`
	OptionIndex *int `json:"option_index" binding:"required"`
}

type GoToRequest struct {
	Index *int `json:"index" binding:"required"`
}

// StartSession creates a fresh attempt, replacing any prior attempt for the
// same session id without warning, and starts its countdown.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.Start(c.Request.Context(), req.SessionID, req.Category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.hub != nil {
		h.hub.StartCountdown(session.ID)
	}

	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) SelectAnswer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.sessionService.SelectAnswer(c.Request.Context(), c.Param("id"), req.QuestionID, *req.OptionIndex)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOption) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Answer recorded"})
}

func (h *SessionHandler) GoToQuestion(c *gin.Context) {
	var req GoToRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessionService.GoToQuestion(c.Request.Context(), c.Param("id"), *req.Index); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Position updated"})
}

func (h *SessionHandler) NextQuestion(c *gin.Context) {
	if err := h.sessionService.NextQuestion(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Position updated"})
}

func (h *SessionHandler) PreviousQuestion(c *gin.Context) {
	if err := h.sessionService.PreviousQuestion(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Position updated"})
}

// SubmitSession seals the attempt and stops its countdown. Submitting an
// already sealed attempt is a no-op.
func (h *SessionHandler) SubmitSession(c *gin.Context) {
	id := c.Param("id")
	if err := h.sessionService.Submit(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.hub != nil {
		h.hub.StopCountdown(id)
	}

	score, err := h.sessionService.Score(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, score)
}

// ResetSession discards the attempt, covering both the retake and the
// new-category flow.
func (h *SessionHandler) ResetSession(c *gin.Context) {
	id := c.Param("id")
	if h.hub != nil {
		h.hub.StopCountdown(id)
	}

	if err := h.sessionService.Reset(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session reset"})
}

func (h *SessionHandler) GetScore(c *gin.Context) {
	score, err := h.sessionService.Score(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, score)
}

func (h *SessionHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, services.Categories())
}
