package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openagora/agora/internal/forum"
	"github.com/openagora/agora/internal/models"
)

type reportRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

// reportPost handles POST /api/v1/posts/:id/report
func (r *Router) reportPost(c *gin.Context) {
	r.createReport(c, models.ReportablePost)
}

// reportComment handles POST /api/v1/comments/:id/report
func (r *Router) reportComment(c *gin.Context) {
	r.createReport(c, models.ReportableComment)
}

func (r *Router) createReport(c *gin.Context, reportableType string) {
	targetID, ok := pathID(c)
	if !ok {
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actorID, _ := actor(c)
	report, err := r.reports.Create(c.Request.Context(), actorID, forum.ReportCreate{
		ReportableType: reportableType,
		ReportableID:   targetID,
		Reason:         req.Reason,
		Details:        req.Details,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReportResponse(report))
}

// listReports handles GET /api/v1/reports
func (r *Router) listReports(c *gin.Context) {
	limit, offset := pageParams(c)

	actorID, actorRole := actor(c)
	reports, err := r.reports.ListPending(c.Request.Context(), actorID, actorRole, limit+1, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	hasMore := len(reports) > limit
	if hasMore {
		reports = reports[:limit]
	}

	out := make([]reportResponse, len(reports))
	for i := range reports {
		out[i] = toReportResponse(&reports[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"reports":  out,
		"has_more": hasMore,
		"limit":    limit,
		"offset":   offset,
	})
}

// resolveReport handles PUT /api/v1/reports/:id
func (r *Router) resolveReport(c *gin.Context) {
	reportID, ok := pathID(c)
	if !ok {
		return
	}

	var req forum.ReportResolve
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actorID, actorRole := actor(c)
	report, err := r.reports.Resolve(c.Request.Context(), actorID, actorRole, reportID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReportResponse(report))
}
