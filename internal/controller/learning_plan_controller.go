package controller

import (
	"cyberlearn_backend/internal/service"
	"cyberlearn_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LearningPlanController struct {
	Service *service.LearningPlanService
}

func NewLearningPlanController(svc *service.LearningPlanService) *LearningPlanController {
	return &LearningPlanController{Service: svc}
}

// @Summary Generate a learning plan
// @Tags learning-plans
// @Accept json
// @Produce json
// @Param body body service.LearningPlanRequest true "Plan parameters"
// @Success 200 {object} service.LearningPlanResponse
// @Failure 400 {object} util.ErrorResponse
// @Router /api/generate-learning-plan [post]
func (c *LearningPlanController) Generate(ctx *gin.Context) {
	var req service.LearningPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
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

// @Summary List learning plans
// @Tags learning-plans
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.PlanList
// @Router /api/learning-plans [get]
func (c *LearningPlanController) List(ctx *gin.Context) {
	limit := util.QueryInt(ctx.Query("limit"), service.DefaultPlanPageSize)
	offset := util.QueryInt(ctx.Query("offset"), 0)

	res, err := c.Service.List(ctx.Request.Context(), limit, offset)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Get a learning plan
// @Tags learning-plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} model.LearningPlan
// @Failure 404 {object} util.ErrorResponse
// @Router /api/learning-plans/{id} [get]
func (c *LearningPlanController) Get(ctx *gin.Context) {
	plan, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, plan)
}

// @Summary Delete a learning plan
// @Tags learning-plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /api/learning-plans/{id} [delete]
func (c *LearningPlanController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true, "message": "Learning plan deleted", "plan_id": id})
}

// @Summary Approve or reject a learning plan
// @Tags learning-plans
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Plan ID"
// @Param approved query bool false "Approval flag" default(true)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /api/approve-learning-plan/{id} [post]
func (c *LearningPlanController) Approve(ctx *gin.Context) {
	approved := true
	if raw := ctx.Query("approved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "approved must be true or false")
			return
		}
		approved = v
	}

	id := ctx.Param("id")
	if err := c.Service.Approve(ctx.Request.Context(), util.UserID(ctx, ""), id, approved); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true, "plan_id": id, "approved": approved})
}

// @Summary Get a chapter of a learning plan
// @Tags learning-plans
// @Produce json
// @Param id path string true "Plan ID"
// @Param chapter_id path string true "Chapter ID"
// @Success 200 {object} service.ChapterView
// @Failure 404 {object} util.ErrorResponse
// @Router /api/learning-plans/{id}/chapter/{chapter_id} [get]
func (c *LearningPlanController) Chapter(ctx *gin.Context) {
	res, err := c.Service.Chapter(ctx.Request.Context(), ctx.Param("id"), ctx.Param("chapter_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Get a section of a learning plan
// @Tags learning-plans
// @Produce json
// @Param id path string true "Plan ID"
// @Param section_id path string true "Section ID"
// @Success 200 {object} service.SectionView
// @Failure 404 {object} util.ErrorResponse
// @Router /api/learning-plans/{id}/section/{section_id} [get]
func (c *LearningPlanController) Section(ctx *gin.Context) {
	res, err := c.Service.Section(ctx.Request.Context(), ctx.Param("id"), ctx.Param("section_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Export a learning plan as markdown
// @Tags learning-plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /api/learning-plans/{id}/export [post]
func (c *LearningPlanController) Export(ctx *gin.Context) {
	id := ctx.Param("id")
	url, err := c.Service.Export(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true, "plan_id": id, "url": url})
}
