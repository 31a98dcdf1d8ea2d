package controller

import (
	"cyberlearn_backend/internal/career"
	"cyberlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct{}

func NewProfileController() *ProfileController {
	return &ProfileController{}
}

type profileRequest struct {
	Text string `json:"text" binding:"required"`
}

// @Summary Classify a learner background
// @Description Suggests a career goal, level and topics from free-form text
// @Tags profile
// @Accept json
// @Produce json
// @Param body body profileRequest true "Background text"
// @Success 200 {object} model.CareerProfile
// @Failure 400 {object} util.ErrorResponse
// @Router /api/analyze-profile [post]
func (c *ProfileController) Analyze(ctx *gin.Context) {
	var req profileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, career.Classify(req.Text))
}
