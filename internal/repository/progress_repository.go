package repository

import (
	"context"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/store"
	"cyberlearn_backend/internal/util"
	"errors"
)

// ProgressRepository stores one progress record per learner. Reads and
// updates of a learner's record are serialized within the process.
type ProgressRepository struct {
	progress store.Collection
	locks    *keyedMutex
}

func NewProgressRepository(s store.Store) *ProgressRepository {
	return &ProgressRepository{progress: s.Collection(CollUserProgress), locks: newKeyedMutex()}
}

// FindOrCreate returns the learner's progress record, creating an empty one
// on first use.
func (r *ProgressRepository) FindOrCreate(ctx context.Context, userID string) (*model.UserProgress, error) {
	unlock := r.locks.Lock(userID)
	defer unlock()
	return r.findOrCreate(ctx, userID)
}

func (r *ProgressRepository) findOrCreate(ctx context.Context, userID string) (*model.UserProgress, error) {
	p, err := findOne[model.UserProgress](ctx, r.progress, store.Document{"user_id": userID}, util.ErrNotFound)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, err
	}

	now := model.Now()
	p = &model.UserProgress{
		ID:           model.GenerateUUID(),
		UserID:       userID,
		Achievements: []string{},
		SkillLevels:  map[string]string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := insert(ctx, r.progress, p, "user progress"); err != nil {
		return nil, err
	}
	return p, nil
}

// Update loads the learner's record, applies fn and saves the result while
// holding the learner's lock. Nothing is written when fn returns false.
func (r *ProgressRepository) Update(ctx context.Context, userID string, fn func(p *model.UserProgress) bool) (*model.UserProgress, error) {
	unlock := r.locks.Lock(userID)
	defer unlock()

	p, err := r.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !fn(p) {
		return p, nil
	}
	if err := r.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProgressRepository) save(ctx context.Context, p *model.UserProgress) error {
	p.UpdatedAt = model.Now()
	fields, err := store.ToDocument(p)
	if err != nil {
		return util.Persistence("encode user progress", err)
	}
	return update(ctx, r.progress, p.ID, fields, util.ErrNotFound)
}
