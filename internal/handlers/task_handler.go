package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"callcenter/internal/authz"
	"callcenter/internal/models"
	"callcenter/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	AssigneeID   int64  `json:"assignee_id" binding:"required"`
	RetailerID   string `json:"retailer_id" binding:"required"`
	RetailerName string `json:"retailer_name"`
	TaskType     string `json:"task_type" binding:"required"`
	Description  string `json:"description"`
	Priority     string `json:"priority"` // High|Medium|Low
	DueDate      string `json:"due_date"` // YYYY-MM-DD
}

type completeTaskRequest struct {
	Outcome string `json:"outcome" binding:"required"` // Reachable|Unreachable|Not Interested
	Comment string `json:"comment"`
}

type assignTaskRequest struct {
	AssigneeID int64 `json:"assignee_id" binding:"required"`
}

// Create godoc
// @Summary      Assign a new task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body      createTaskRequest  true  "Task"
// @Success      201   {object}  models.Task
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	log.Printf("[task][create] call by userID=%d role=%d", userID, roleID)

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := &models.Task{
		AssigneeID:   req.AssigneeID,
		CreatorID:    userID,
		RetailerID:   strings.TrimSpace(req.RetailerID),
		RetailerName: req.RetailerName,
		TaskType:     req.TaskType,
		Description:  req.Description,
		DueDate:      strings.TrimSpace(req.DueDate),
	}
	if req.Priority != "" {
		p, err := models.ParsePriority(req.Priority)
		if err != nil {
			respondError(c, "[task][create]", err)
			return
		}
		task.Priority = p
	}

	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		respondError(c, "[task][create]", err)
		return
	}
	log.Printf("[task][create][ok] id=%d assignee_id=%d retailer=%s", created.ID, created.AssigneeID, created.RetailerID)
	c.JSON(http.StatusCreated, created)
}

// GetAll godoc
// @Summary      List tasks
// @Description  Agents only get their own tasks.
// @Tags         Tasks
// @Produce      json
// @Param        assignee_id  query  int     false  "Agent id (supervisors)"
// @Param        retailer_id  query  string  false  "Retailer id"
// @Param        status       query  string  false  "Pending|In Progress|Completed"
// @Param        priority     query  string  false  "High|Medium|Low"
// @Success      200  {array}   models.Task
// @Router       /tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	filter, ok := taskFilterFromQuery(c)
	if !ok {
		return
	}
	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "[task][list]", err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	log.Printf("[task][list][ok] count=%d", len(tasks))
	c.JSON(http.StatusOK, tasks)
}

func taskFilterFromQuery(c *gin.Context) (models.TaskFilter, bool) {
	var filter models.TaskFilter
	if !scopeToAgent(c, &filter) {
		return filter, false
	}
	if v := strings.TrimSpace(c.Query("retailer_id")); v != "" {
		filter.RetailerID = &v
	}
	if v := c.Query("status"); v != "" {
		st, err := models.ParseStatus(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return filter, false
		}
		filter.Status = &st
	}
	if v := c.Query("priority"); v != "" {
		p, err := models.ParsePriority(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return filter, false
		}
		filter.Priority = &p
	}
	return filter, true
}

// loadVisible fetches the task and enforces that agents only touch their own.
func (h *TaskHandler) loadVisible(c *gin.Context, tag string) (*models.Task, bool) {
	id, ok := parseID(c, tag)
	if !ok {
		return nil, false
	}
	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, tag, err)
		return nil, false
	}
	if task == nil {
		log.Printf("%s[404] id=%d", tag, id)
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return nil, false
	}
	userID, roleID := getUserAndRole(c)
	if !authz.IsElevated(roleID) && task.AssigneeID != userID {
		log.Printf("%s[deny] uid=%d assignee=%d", tag, userID, task.AssigneeID)
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return task, true
}

// GetByID godoc
// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  models.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	task, ok := h.loadVisible(c, "[task][get]")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, task)
}

// Assign godoc
// @Summary      Reassign a task to another agent
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Task id"
// @Param        body  body      assignTaskRequest  true  "New assignee"
// @Success      200   {object}  models.Task
// @Router       /tasks/{id}/assign [post]
func (h *TaskHandler) Assign(c *gin.Context) {
	id, ok := parseID(c, "[task][assign]")
	if !ok {
		return
	}
	var req assignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := h.service.Reassign(c.Request.Context(), id, req.AssigneeID)
	if err != nil {
		respondError(c, "[task][assign]", err)
		return
	}
	log.Printf("[task][assign][ok] id=%d assignee_id=%d", id, req.AssigneeID)
	c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary      Delete a task
// @Tags         Tasks
// @Param        id  path  int  true  "Task id"
// @Success      204
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "[task][delete]")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[task][delete]", err)
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// MarkAsCalled godoc
// @Summary      Record a call attempt
// @Description  Moves the task to In Progress and advances its progress (50, then +25 up to 90).
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  models.Task
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /tasks/{id}/called [post]
func (h *TaskHandler) MarkAsCalled(c *gin.Context) {
	task, ok := h.loadVisible(c, "[task][called]")
	if !ok {
		return
	}
	updated, err := h.service.MarkAsCalled(c.Request.Context(), task.ID)
	if err != nil {
		respondError(c, "[task][called]", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Complete godoc
// @Summary      Close a task with the call outcome
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Task id"
// @Param        body  body      completeTaskRequest  true  "Outcome and optional comment"
// @Success      200   {object}  models.Task
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	var req completeTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	outcome, err := models.ParseOutcome(req.Outcome)
	if err != nil {
		respondError(c, "[task][complete]", err)
		return
	}
	task, ok := h.loadVisible(c, "[task][complete]")
	if !ok {
		return
	}
	updated, err := h.service.Complete(c.Request.Context(), task.ID, outcome, req.Comment)
	if err != nil {
		respondError(c, "[task][complete]", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Summary godoc
// @Summary      Task counts per status
// @Tags         Tasks
// @Produce      json
// @Param        assignee_id  query  int  false  "Agent id (supervisors)"
// @Success      200  {object}  lifecycle.Summary
// @Router       /tasks/summary [get]
func (h *TaskHandler) Summary(c *gin.Context) {
	filter, ok := taskFilterFromQuery(c)
	if !ok {
		return
	}
	sum, err := h.service.Summary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "[task][summary]", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// History godoc
// @Summary      Call log of a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task id"
// @Success      200  {array}   models.CallLog
// @Router       /tasks/{id}/calls [get]
func (h *TaskHandler) History(c *gin.Context) {
	task, ok := h.loadVisible(c, "[task][history]")
	if !ok {
		return
	}
	logs, err := h.service.History(c.Request.Context(), task.ID)
	if err != nil {
		respondError(c, "[task][history]", err)
		return
	}
	if logs == nil {
		logs = []models.CallLog{}
	}
	c.JSON(http.StatusOK, logs)
}
