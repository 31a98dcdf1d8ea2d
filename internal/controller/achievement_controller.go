package controller

import (
	"cyberlearn_backend/internal/service"
	"cyberlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	Service *service.ProgressService
}

func NewAchievementController(svc *service.ProgressService) *AchievementController {
	return &AchievementController{Service: svc}
}

// @Summary List achievements
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/achievements [get]
func (c *AchievementController) List(ctx *gin.Context) {
	util.Success(ctx, gin.H{"achievements": c.Service.Achievements()})
}

// @Summary Learner progress
// @Description Created on first access
// @Tags progress
// @Produce json
// @Param user_id path string true "Learner ID"
// @Success 200 {object} service.UserProgressView
// @Router /api/user-progress/{user_id} [get]
func (c *AchievementController) UserProgress(ctx *gin.Context) {
	res, err := c.Service.GetUserProgress(ctx.Request.Context(), ctx.Param("user_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
