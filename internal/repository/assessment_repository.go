package repository

import (
	"context"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/store"
	"cyberlearn_backend/internal/util"
)

type AssessmentRepository struct {
	assessments store.Collection
	results     store.Collection
}

func NewAssessmentRepository(s store.Store) *AssessmentRepository {
	return &AssessmentRepository{
		assessments: s.Collection(CollAssessments),
		results:     s.Collection(CollAssessmentResults),
	}
}

func (r *AssessmentRepository) Create(ctx context.Context, a *model.Assessment) error {
	return insert(ctx, r.assessments, a, "assessment")
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id string) (*model.Assessment, error) {
	return findOne[model.Assessment](ctx, r.assessments, store.Document{"id": id}, util.ErrAssessmentNotFound)
}

func (r *AssessmentRepository) CreateResult(ctx context.Context, res *model.AssessmentResult) error {
	return insert(ctx, r.results, res, "assessment result")
}

func (r *AssessmentRepository) FindResultByID(ctx context.Context, id string) (*model.AssessmentResult, error) {
	return findOne[model.AssessmentResult](ctx, r.results, store.Document{"id": id}, util.ErrResultNotFound)
}

// ListResultsByUser returns a learner's results, newest first.
func (r *AssessmentRepository) ListResultsByUser(ctx context.Context, userID string, limit int64) ([]model.AssessmentResult, error) {
	cur := r.results.Find(store.Document{"user_id": userID}).Sort("created_at", store.Descending).Limit(limit)
	return findAll[model.AssessmentResult](ctx, cur)
}
