package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"callcenter/internal/authz"
	"callcenter/internal/models"
	"callcenter/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// GetSummary godoc
// @Summary      Dashboard summary
// @Description  Status counts, call outcomes and per-agent completion rates.
// @Tags         Reports
// @Produce      json
// @Param        assignee_id  query  int  false  "Agent id (supervisors)"
// @Success      200  {object}  services.ReportSummary
// @Router       /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	var filter models.TaskFilter
	if !scopeToAgent(c, &filter) {
		return
	}
	data, err := h.Service.GetSummary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "[report][summary]", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// ExportCSV godoc
// @Summary      Export tasks as CSV
// @Tags         Reports
// @Produce      text/csv
// @Param        assignee_id  query  int  false  "Agent id (supervisors)"
// @Success      200  {file}  file
// @Router       /reports/tasks.csv [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	filter, ok := taskFilterFromQuery(c)
	if !ok {
		return
	}
	name := fmt.Sprintf("tasks_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	if err := h.Service.ExportTasksCSV(c.Request.Context(), c.Writer, filter); err != nil {
		// headers may be out already; log only
		log.Printf("[report][csv][err] %v", err)
		c.Status(http.StatusInternalServerError)
	}
}

// AgentPDF godoc
// @Summary      Agent task report (PDF)
// @Tags         Reports
// @Produce      application/pdf
// @Param        id  path  int  true  "Agent id"
// @Success      200  {file}  file
// @Failure      404  {object}  map[string]string
// @Router       /reports/agents/{id}/pdf [get]
func (h *ReportHandler) AgentPDF(c *gin.Context) {
	agentID, ok := parseID(c, "[report][pdf]")
	if !ok {
		return
	}
	userID, roleID := getUserAndRole(c)
	if !authz.IsElevated(roleID) && agentID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	path, _, err := h.Service.AgentReportPDF(c.Request.Context(), agentID)
	if err != nil {
		respondError(c, "[report][pdf]", err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

type emailReportRequest struct {
	To string `json:"to"`
}

// EmailAgentReport godoc
// @Summary      Mail an agent's PDF report
// @Description  Goes to "to" when given, otherwise to the agent.
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true   "Agent id"
// @Param        body  body  emailReportRequest  false  "Recipient"
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /reports/agents/{id}/email [post]
func (h *ReportHandler) EmailAgentReport(c *gin.Context) {
	agentID, ok := parseID(c, "[report][email]")
	if !ok {
		return
	}
	var req emailReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	to, err := h.Service.EmailAgentReport(c.Request.Context(), agentID, req.To)
	if err != nil {
		respondError(c, "[report][email]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent_to": to})
}
