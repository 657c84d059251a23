package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/smartcampus/internal/controller"
	"github.com/lshigami/smartcampus/internal/dto"
	"github.com/lshigami/smartcampus/internal/service"
	"github.com/rs/zerolog/log"
)

type AuditController struct {
	auditService service.AdminAuditService
}

func NewAuditController(as service.AdminAuditService) *AuditController {
	return &AuditController{auditService: as}
}

// RegisterRoutes mounts the read-only audit endpoints. The group must
// already require an admin token.
func (c *AuditController) RegisterRoutes(rg *gin.RouterGroup) {
	attempts := rg.Group("/attempts")
	attempts.GET("", c.ListAttempts)
	attempts.GET("/:attempt_id/results", c.GetAttemptResults)
}

// ListAttempts godoc
// @Summary (Admin) List exam attempts
// @Description Lists attempts across all students, newest first, optionally filtered by user and course.
// @Tags Admin - Audit
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "Filter by user ID"
// @Param course_id query int false "Filter by course ID"
// @Success 200 {array} dto.AttemptDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/attempts [get]
func (c *AuditController) ListAttempts(ctx *gin.Context) {
	var query dto.AttemptAuditQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		log.Warn().Err(err).Msg("Admin ListAttempts: Failed to bind query")
		controller.BadRequest(ctx, "Invalid query parameters", err.Error())
		return
	}
	attempts, err := c.auditService.ListAttempts(ctx.Request.Context(), query)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetAttemptResults godoc
// @Summary (Admin) Review any attempt
// @Description Renders the review of any attempt, including the answer key, as JSON or CSV.
// @Tags Admin - Audit
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Param format query string false "json (default) or csv"
// @Success 200 {object} dto.ExamResultsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid attempt ID or format"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/attempts/{attempt_id}/results [get]
func (c *AuditController) GetAttemptResults(ctx *gin.Context) {
	attemptID, err := controller.ParseID(ctx.Param("attempt_id"), "attempt_id")
	if err != nil {
		controller.BadRequest(ctx, err.Error())
		return
	}
	rendered, err := c.auditService.Results(ctx.Request.Context(), attemptID, ctx.Query("format"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	controller.SendResults(ctx, rendered)
}
