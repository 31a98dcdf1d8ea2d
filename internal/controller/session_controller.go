package controller

import (
	"cyberlearn_backend/internal/service"
	"cyberlearn_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Service *service.SessionService
}

func NewSessionController(svc *service.SessionService) *SessionController {
	return &SessionController{Service: svc}
}

// @Summary Start a learning session
// @Tags sessions
// @Produce json
// @Param plan_id query string true "Plan ID"
// @Param user_id query string false "Learner ID" default(anonymous)
// @Success 200 {object} service.SessionStarted
// @Failure 404 {object} util.ErrorResponse
// @Router /api/start-learning-session [post]
func (c *SessionController) Start(ctx *gin.Context) {
	res, err := c.Service.Start(ctx.Request.Context(), ctx.Query("plan_id"), util.UserID(ctx, ctx.Query("user_id")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Get a learning session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} model.LearningSession
// @Failure 404 {object} util.ErrorResponse
// @Router /api/learning-session/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	sess, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sess)
}

// @Summary Update session progress
// @Tags sessions
// @Produce json
// @Param session_id query string true "Session ID"
// @Param progress_percentage query number true "Completion, 0-100"
// @Param time_spent query int false "Minutes studied since the last update"
// @Success 200 {object} service.ProgressUpdate
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/update-progress [post]
func (c *SessionController) UpdateProgress(ctx *gin.Context) {
	pct, err := strconv.ParseFloat(ctx.Query("progress_percentage"), 64)
	if err != nil {
		util.BadRequest(ctx, "progress_percentage must be a number")
		return
	}
	timeSpent := util.QueryInt(ctx.Query("time_spent"), 0)

	res, err := c.Service.UpdateProgress(ctx.Request.Context(), ctx.Query("session_id"), pct, timeSpent)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
