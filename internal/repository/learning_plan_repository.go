package repository

import (
	"context"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/store"
	"cyberlearn_backend/internal/util"
)

type LearningPlanRepository struct {
	plans store.Collection
}

func NewLearningPlanRepository(s store.Store) *LearningPlanRepository {
	return &LearningPlanRepository{plans: s.Collection(CollLearningPlans)}
}

func (r *LearningPlanRepository) Create(ctx context.Context, p *model.LearningPlan) error {
	return insert(ctx, r.plans, p, "learning plan")
}

func (r *LearningPlanRepository) FindByID(ctx context.Context, id string) (*model.LearningPlan, error) {
	return findOne[model.LearningPlan](ctx, r.plans, store.Document{"id": id}, util.ErrPlanNotFound)
}

// List pages through plans, newest first, and reports the total count.
func (r *LearningPlanRepository) List(ctx context.Context, limit, offset int64) ([]model.LearningPlan, int64, error) {
	total, err := r.plans.CountDocuments(ctx, nil)
	if err != nil {
		return nil, 0, util.Persistence("count learning plans", err)
	}
	cur := r.plans.Find(nil).Sort("created_at", store.Descending).Skip(offset).Limit(limit)
	plans, err := findAll[model.LearningPlan](ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (r *LearningPlanRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	return update(ctx, r.plans, id, store.Document{
		"approved":   approved,
		"updated_at": model.Now(),
	}, util.ErrPlanNotFound)
}

func (r *LearningPlanRepository) Delete(ctx context.Context, id string) error {
	n, err := r.plans.DeleteOne(ctx, store.Document{"id": id})
	if err != nil {
		return util.Persistence("delete learning plan", err)
	}
	if n == 0 {
		return util.ErrPlanNotFound
	}
	return nil
}
