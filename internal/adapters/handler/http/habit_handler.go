package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name        string `json:"name" binding:"required" example:"Read 20 pages"`
	Description string `json:"description"`
	Frequency   string `json:"frequency" example:"daily"`
	Color       string `json:"color" example:"blue"`
}

// Empty fields keep their current value.
type updateHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	Color       string `json:"color"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)

		habits.PUT("/:id/completions/:date", h.Toggle)
		habits.POST("/:id/completions/:date", h.Mark)
		habits.DELETE("/:id/completions/:date", h.Unmark)
	}
}

// Create godoc
// @Summary      Create a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createHabitRequest  true  "Habit"
// @Success      201   {object}  domain.Habit
// @Failure      400   {object}  errorResponse
// @Router       /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		Color:       req.Color,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
// @Summary      List the caller's habits
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Habit
// @Router       /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	if list == nil {
		list = []*domain.Habit{}
	}

	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary      Get one habit
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Habit ID"
// @Success      200  {object}  domain.Habit
// @Failure      404  {object}  errorResponse
// @Router       /habits/{id} [get]
func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	habit, err := h.svc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Update godoc
// @Summary      Update a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Habit ID"
// @Param        body  body      updateHabitRequest  true  "Fields to change"
// @Success      200   {object}  domain.Habit
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /habits/{id} [put]
func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		Color:       req.Color,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Delete godoc
// @Summary      Delete a habit and its history
// @Tags         habits
// @Security     BearerAuth
// @Param        id   path  string  true  "Habit ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Toggle godoc
// @Summary      Flip the completion of one day
// @Tags         completions
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Habit ID"
// @Param        date  path      string  true  "Day (YYYY-MM-DD)"
// @Success      200   {object}  domain.Habit
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /habits/{id}/completions/{date} [put]
func (h *HabitHandler) Toggle(c *gin.Context) {
	h.completion(c, func(in services.CompletionInput) (*domain.Habit, error) {
		return h.svc.ToggleCompletion(c.Request.Context(), in)
	})
}

// Mark godoc
// @Summary      Mark one day as completed
// @Tags         completions
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Habit ID"
// @Param        date  path      string  true  "Day (YYYY-MM-DD)"
// @Success      200   {object}  domain.Habit
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /habits/{id}/completions/{date} [post]
func (h *HabitHandler) Mark(c *gin.Context) {
	h.completion(c, func(in services.CompletionInput) (*domain.Habit, error) {
		return h.svc.SetCompletion(c.Request.Context(), in, true)
	})
}

// Unmark godoc
// @Summary      Remove the completion of one day
// @Tags         completions
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Habit ID"
// @Param        date  path      string  true  "Day (YYYY-MM-DD)"
// @Success      200   {object}  domain.Habit
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /habits/{id}/completions/{date} [delete]
func (h *HabitHandler) Unmark(c *gin.Context) {
	h.completion(c, func(in services.CompletionInput) (*domain.Habit, error) {
		return h.svc.SetCompletion(c.Request.Context(), in, false)
	})
}

func (h *HabitHandler) completion(c *gin.Context, apply func(services.CompletionInput) (*domain.Habit, error)) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	habit, err := apply(services.CompletionInput{
		HabitID: c.Param("id"),
		UserID:  userID,
		Date:    c.Param("date"),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}
