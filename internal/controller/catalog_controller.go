package controller

import (
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog *catalog.Catalog
	Version string
}

func NewCatalogController(c *catalog.Catalog, version string) *CatalogController {
	return &CatalogController{Catalog: c, Version: version}
}

// @Summary Service banner
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/ [get]
func (c *CatalogController) Root(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"message": "Cybersecurity Learning Plan API",
		"version": c.Version,
	})
}

// @Summary List catalogs
// @Description Topics, levels, focus areas, career goals and question types accepted by the API
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/topics [get]
func (c *CatalogController) Topics(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"topics":         c.Catalog.TopicMap(),
		"levels":         c.Catalog.LevelMap(),
		"focus_areas":    c.Catalog.FocusAreas,
		"career_goals":   c.Catalog.CareerGoalMap(),
		"question_types": c.Catalog.QuestionTypeMap(),
	})
}
