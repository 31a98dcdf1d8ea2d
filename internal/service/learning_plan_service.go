package service

import (
	"context"
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/curriculum"
	"cyberlearn_backend/internal/event"
	"cyberlearn_backend/internal/generation"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/prompt"
	"cyberlearn_backend/internal/repository"
	"cyberlearn_backend/internal/util"
	"cyberlearn_backend/pkg/logger"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	DefaultDurationWeeks = 8
	MaxDurationWeeks     = 52
	DefaultPlanPageSize  = 20
	MaxPlanPageSize      = 100
)

type LearningPlanService struct {
	Repo        *repository.LearningPlanRepository
	Assessments *repository.AssessmentRepository
	Progress    *ProgressService
	Generator   generation.ContentGenerator
	Storage     *StorageService
	Catalog     *catalog.Catalog
	Events      event.Publisher
}

func NewLearningPlanService(
	repo *repository.LearningPlanRepository,
	assessments *repository.AssessmentRepository,
	progress *ProgressService,
	generator generation.ContentGenerator,
	storage *StorageService,
	c *catalog.Catalog,
	events event.Publisher,
) *LearningPlanService {
	return &LearningPlanService{
		Repo:        repo,
		Assessments: assessments,
		Progress:    progress,
		Generator:   generator,
		Storage:     storage,
		Catalog:     c,
		Events:      events,
	}
}

type LearningPlanRequest struct {
	Topic                 string   `json:"topic"`
	Level                 string   `json:"level"`
	DurationWeeks         int      `json:"duration_weeks"`
	FocusAreas            []string `json:"focus_areas"`
	IncludeLabs           *bool    `json:"include_labs"`
	IncludeCertifications *bool    `json:"include_certifications"`
	UserBackground        string   `json:"user_background"`
	AssessmentResultID    string   `json:"assessment_result_id"`
}

type LearningPlanResponse struct {
	Success         bool                  `json:"success"`
	PlanID          string                `json:"plan_id"`
	Curriculum      string                `json:"curriculum"`
	Topic           string                `json:"topic"`
	Level           string                `json:"level"`
	DurationWeeks   int                   `json:"duration_weeks"`
	TableOfContents model.TableOfContents `json:"table_of_contents"`
}

type PlanList struct {
	Plans  []model.LearningPlan `json:"plans"`
	Total  int64                `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

type ChapterView struct {
	PlanID        string          `json:"plan_id"`
	ID            string          `json:"id"`
	ChapterNumber int             `json:"chapter_number"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Sections      []model.Section `json:"sections"`
	EstimatedTime string          `json:"estimated_time"`
}

type SectionView struct {
	PlanID        string `json:"plan_id"`
	ChapterID     string `json:"chapter_id"`
	ChapterTitle  string `json:"chapter_title"`
	ID            string `json:"id"`
	SectionNumber string `json:"section_number"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	EstimatedTime string `json:"estimated_time"`
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func (s *LearningPlanService) validate(req *LearningPlanRequest) error {
	if err := s.Catalog.ValidateTopic(req.Topic); err != nil {
		return err
	}
	if err := s.Catalog.ValidateLevel(req.Level); err != nil {
		return err
	}
	if req.DurationWeeks == 0 {
		req.DurationWeeks = DefaultDurationWeeks
	}
	if req.DurationWeeks < 1 || req.DurationWeeks > MaxDurationWeeks {
		return fmt.Errorf("%w: duration_weeks must be between 1 and %d", util.ErrInvalidInput, MaxDurationWeeks)
	}
	return nil
}

// personalization loads the referenced assessment result. A missing result
// only drops the personalization block.
func (s *LearningPlanService) personalization(ctx context.Context, resultID string) (string, error) {
	if resultID == "" {
		return "", nil
	}
	res, err := s.Assessments.FindResultByID(ctx, resultID)
	if errors.Is(err, util.ErrNotFound) {
		logger.Log.Warn("Assessment result for personalization not found", zap.String("resultID", resultID))
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return prompt.PersonalizationNotes(res), nil
}

// Generate produces, indexes and stores a curriculum. Generation failures
// never surface: the generator falls back to template content.
func (s *LearningPlanService) Generate(ctx context.Context, req LearningPlanRequest) (*LearningPlanResponse, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}
	notes, err := s.personalization(ctx, req.AssessmentResultID)
	if err != nil {
		return nil, err
	}

	labs := boolOr(req.IncludeLabs, true)
	certs := boolOr(req.IncludeCertifications, true)
	focus := "General comprehensive coverage"
	if len(req.FocusAreas) > 0 {
		focus = strings.Join(req.FocusAreas, ", ")
	}

	text, err := s.Generator.Generate(ctx, generation.Request{
		Kind: generation.KindCurriculum,
		Prompt: prompt.LearningPlanPrompt(s.Catalog, prompt.PlanRequest{
			Topic:                 req.Topic,
			Level:                 req.Level,
			DurationWeeks:         req.DurationWeeks,
			FocusAreas:            req.FocusAreas,
			IncludeLabs:           labs,
			IncludeCertifications: certs,
			UserBackground:        req.UserBackground,
			Personalization:       notes,
		}),
		Vars: map[string]any{
			"topic":          s.Catalog.TopicText(req.Topic),
			"level":          s.Catalog.LevelText(req.Level),
			"duration":       req.DurationWeeks,
			"focus":          focus,
			"phases":         curriculum.Phases(req.DurationWeeks),
			"labs":           labs,
			"certifications": certs,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate curriculum: %w", err)
	}

	now := model.Now()
	focusAreas := req.FocusAreas
	if focusAreas == nil {
		focusAreas = []string{}
	}
	plan := &model.LearningPlan{
		ID:                   model.GenerateUUID(),
		Topic:                req.Topic,
		Level:                req.Level,
		DurationWeeks:        req.DurationWeeks,
		FocusAreas:           focusAreas,
		Curriculum:           text,
		TableOfContents:      curriculum.Extract(text, req.Level),
		UserBackground:       req.UserBackground,
		AssessmentResultID:   req.AssessmentResultID,
		PersonalizationNotes: notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.Repo.Create(ctx, plan); err != nil {
		return nil, err
	}

	logger.Log.Info("Learning plan generated",
		zap.String("planID", plan.ID),
		zap.String("topic", plan.Topic),
		zap.Int("chapters", plan.TableOfContents.TotalChapters),
	)
	publish(ctx, s.Events, event.PlanGenerated, map[string]any{
		"plan_id":        plan.ID,
		"topic":          plan.Topic,
		"level":          plan.Level,
		"duration_weeks": plan.DurationWeeks,
		"personalized":   notes != "",
	})

	return &LearningPlanResponse{
		Success:         true,
		PlanID:          plan.ID,
		Curriculum:      plan.Curriculum,
		Topic:           plan.Topic,
		Level:           plan.Level,
		DurationWeeks:   plan.DurationWeeks,
		TableOfContents: plan.TableOfContents,
	}, nil
}

func (s *LearningPlanService) Get(ctx context.Context, id string) (*model.LearningPlan, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *LearningPlanService) List(ctx context.Context, limit, offset int) (*PlanList, error) {
	if limit <= 0 {
		limit = DefaultPlanPageSize
	}
	if limit > MaxPlanPageSize {
		limit = MaxPlanPageSize
	}
	if offset < 0 {
		offset = 0
	}
	plans, total, err := s.Repo.List(ctx, int64(limit), int64(offset))
	if err != nil {
		return nil, err
	}
	return &PlanList{Plans: plans, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *LearningPlanService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("Learning plan deleted", zap.String("planID", id))
	return nil
}

// Approve records the learner's decision on a plan. Approval unlocks
// plan_approved.
func (s *LearningPlanService) Approve(ctx context.Context, userID, id string, approved bool) error {
	if err := s.Repo.SetApproved(ctx, id, approved); err != nil {
		return err
	}
	if !approved {
		return nil
	}
	if _, err := s.Progress.Award(ctx, userID, catalog.AchievementPlanApproved); err != nil {
		return err
	}
	publish(ctx, s.Events, event.PlanApproved, map[string]any{
		"plan_id": id,
		"user_id": userID,
	})
	return nil
}

func (s *LearningPlanService) Chapter(ctx context.Context, planID, chapterID string) (*ChapterView, error) {
	plan, err := s.Repo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	ch, ok := curriculum.FindChapter(plan.TableOfContents, chapterID)
	if !ok {
		return nil, util.ErrChapterNotFound
	}
	return &ChapterView{
		PlanID:        plan.ID,
		ID:            ch.ID,
		ChapterNumber: ch.Number,
		Title:         ch.Title,
		Description:   ch.Content,
		Sections:      ch.Sections,
		EstimatedTime: ch.EstimatedTime,
	}, nil
}

func (s *LearningPlanService) Section(ctx context.Context, planID, sectionID string) (*SectionView, error) {
	plan, err := s.Repo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	ch, sec, ok := curriculum.FindSection(plan.TableOfContents, sectionID)
	if !ok {
		return nil, util.ErrSectionNotFound
	}
	return &SectionView{
		PlanID:        plan.ID,
		ChapterID:     ch.ID,
		ChapterTitle:  ch.Title,
		ID:            sec.ID,
		SectionNumber: sec.Number,
		Title:         sec.Title,
		Content:       sec.Content,
		EstimatedTime: sec.EstimatedTime,
	}, nil
}

// Export writes the curriculum markdown to the storage provider and returns
// its URL.
func (s *LearningPlanService) Export(ctx context.Context, id string) (string, error) {
	plan, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("learning-plans/%s.md", plan.ID)
	url, err := s.Storage.UploadText(ctx, filename, plan.Curriculum, util.MimeMarkdown)
	if err != nil {
		return "", fmt.Errorf("export learning plan: %w", err)
	}
	logger.Log.Info("Learning plan exported", zap.String("planID", plan.ID), zap.String("url", url))
	return url, nil
}
