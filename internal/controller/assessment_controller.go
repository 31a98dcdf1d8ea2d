package controller

import (
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/service"
	"cyberlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// @Summary Generate a skill assessment
// @Tags assessments
// @Produce json
// @Param topic query string true "Topic key"
// @Param level query string true "Level key"
// @Param career_goal query string false "Career goal key"
// @Success 200 {object} service.GeneratedAssessment
// @Failure 400 {object} util.ErrorResponse
// @Router /api/generate-assessment [post]
func (c *AssessmentController) Generate(ctx *gin.Context) {
	var req service.GenerateAssessmentRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.Generate(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Get an assessment
// @Description Returns the questions without answers or explanations
// @Tags assessments
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} service.GeneratedAssessment
// @Failure 404 {object} util.ErrorResponse
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	res, err := c.Service.GetAssessment(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Submit assessment answers
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Submission true "Answers"
// @Success 200 {object} service.SubmissionResult
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/submit-assessment [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	var sub model.Submission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.Submit(ctx.Request.Context(), util.UserID(ctx, ""), sub)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Get an assessment result
// @Tags assessments
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} model.AssessmentResult
// @Failure 404 {object} util.ErrorResponse
// @Router /api/assessment-result/{id} [get]
func (c *AssessmentController) GetResult(ctx *gin.Context) {
	res, err := c.Service.GetResult(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
