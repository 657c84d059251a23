package user

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/smartcampus/internal/controller"
	"github.com/lshigami/smartcampus/internal/dto"
	"github.com/lshigami/smartcampus/internal/middleware"
	"github.com/lshigami/smartcampus/internal/service"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	sessionService service.ExamSessionService
	resultsService service.ResultsService
}

func NewExamController(ss service.ExamSessionService, rs service.ResultsService) *ExamController {
	return &ExamController{
		sessionService: ss,
		resultsService: rs,
	}
}

// RegisterRoutes mounts the CBT endpoints. The group must already require
// authentication.
func (c *ExamController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/exams", c.StartExam)
	rg.GET("/exams", c.GetExams)
	rg.PUT("/exams", c.SubmitAnswers)
	rg.GET("/exam_questions", c.GetExamQuestions)
	rg.POST("/exam_questions", c.SubmitAnswers)
	rg.GET("/exam_results", c.GetExamResults)
}

// StartExam godoc
// @Summary (User) Start a CBT attempt
// @Description Creates a virtual exam and an attempt for a registered course and materializes its questions. Correct answers are not included.
// @Tags User - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StartExamRequest true "Course and optional duration / question count"
// @Success 201 {object} dto.StartExamResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Not registered for the course"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams [post]
func (c *ExamController) StartExam(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}
	var req dto.StartExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User StartExam: Failed to bind JSON")
		controller.BadRequest(ctx, "Invalid request body", err.Error())
		return
	}

	resp, err := c.sessionService.StartAttempt(ctx.Request.Context(), userID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetExams godoc
// @Summary (User) List exams, exam history, or one attempt
// @Description Without parameters lists the courses the user can sit a CBT for this term. With history=1 lists the user's attempts. With attempt_id returns that attempt and its questions; an exam id from an old link is also accepted.
// @Tags User - Exams
// @Produce json
// @Security BearerAuth
// @Param history query string false "1 to list attempt history"
// @Param attempt_id query int false "Attempt ID"
// @Success 200 {array} dto.RegisteredExamDTO
// @Success 200 {object} dto.AttemptHistoryResponse
// @Success 200 {object} dto.AttemptViewResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid attempt ID format"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams [get]
func (c *ExamController) GetExams(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}

	if raw, present := ctx.GetQuery("attempt_id"); present {
		handle, err := controller.ParseID(raw, "attempt_id")
		if err != nil {
			controller.BadRequest(ctx, err.Error())
			return
		}
		view, err := c.sessionService.GetAttempt(ctx.Request.Context(), userID, handle)
		if err != nil {
			controller.RespondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, view)
		return
	}

	if isTruthy(ctx.Query("history")) {
		history, err := c.sessionService.ListHistory(ctx.Request.Context(), userID)
		if err != nil {
			controller.RespondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, history)
		return
	}

	exams, err := c.sessionService.ListRegisteredExams(ctx.Request.Context(), userID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// SubmitAnswers godoc
// @Summary (User) Submit answers and grade an attempt
// @Description Grades the attempt exactly once. Served on both PUT /exams and POST /exam_questions.
// @Tags User - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitAnswersRequest true "Attempt ID and answers keyed by question ID"
// @Success 200 {object} dto.SubmitAnswersResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or exam already submitted"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams [put]
// @Router /exam_questions [post]
func (c *ExamController) SubmitAnswers(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}
	var req dto.SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User SubmitAnswers: Failed to bind JSON")
		controller.BadRequest(ctx, "Invalid request body", err.Error())
		return
	}

	log.Info().Uint("attemptID", req.AttemptID).Uint("userID", userID).Int("answerCount", len(req.Answers)).Msg("Received exam submission")

	resp, err := c.sessionService.SubmitAnswers(ctx.Request.Context(), userID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetExamQuestions godoc
// @Summary (User) Get the questions of an attempt
// @Description Returns the frozen question set. Correct answers are only included once the attempt is graded.
// @Tags User - Exams
// @Produce json
// @Security BearerAuth
// @Param attempt_id query int true "Attempt ID"
// @Success 200 {object} dto.AttemptViewResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid attempt ID"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exam_questions [get]
func (c *ExamController) GetExamQuestions(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}
	attemptID, err := controller.ParseID(ctx.Query("attempt_id"), "attempt_id")
	if err != nil {
		controller.BadRequest(ctx, err.Error())
		return
	}
	view, err := c.sessionService.GetQuestions(ctx.Request.Context(), userID, attemptID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// GetExamResults godoc
// @Summary (User) Review an attempt
// @Description Renders the attempt review as JSON or as a CSV download.
// @Tags User - Exams
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param attempt_id query int true "Attempt ID"
// @Param format query string false "json (default) or csv"
// @Success 200 {object} dto.ExamResultsResponse
// @Failure 400 {object} dto.ErrorResponse "Missing attempt ID or unknown format"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exam_results [get]
func (c *ExamController) GetExamResults(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized", Message: "Authentication required"})
		return
	}
	attemptID, err := controller.ParseID(ctx.Query("attempt_id"), "attempt_id")
	if err != nil {
		controller.BadRequest(ctx, err.Error())
		return
	}
	rendered, err := c.resultsService.StudentResults(ctx.Request.Context(), userID, attemptID, ctx.Query("format"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	controller.SendResults(ctx, rendered)
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
