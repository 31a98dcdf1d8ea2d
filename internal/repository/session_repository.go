package repository

import (
	"context"
	"cyberlearn_backend/internal/model"
	"cyberlearn_backend/internal/store"
	"cyberlearn_backend/internal/util"
)

type SessionRepository struct {
	sessions store.Collection
	locks    *keyedMutex
}

func NewSessionRepository(s store.Store) *SessionRepository {
	return &SessionRepository{sessions: s.Collection(CollLearningSessions), locks: newKeyedMutex()}
}

func (r *SessionRepository) Create(ctx context.Context, sess *model.LearningSession) error {
	return insert(ctx, r.sessions, sess, "learning session")
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*model.LearningSession, error) {
	return findOne[model.LearningSession](ctx, r.sessions, store.Document{"id": id}, util.ErrSessionNotFound)
}

// Update reloads the session, applies fn and saves it while holding the
// session's lock, so concurrent counter updates are not lost. fn sees the
// stored state and may veto the write with an error.
func (r *SessionRepository) Update(ctx context.Context, id string, fn func(sess *model.LearningSession) error) (*model.LearningSession, error) {
	unlock := r.locks.Lock(id)
	defer unlock()

	sess, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = model.Now()
	fields, err := store.ToDocument(sess)
	if err != nil {
		return nil, util.Persistence("encode learning session", err)
	}
	if err := update(ctx, r.sessions, sess.ID, fields, util.ErrSessionNotFound); err != nil {
		return nil, err
	}
	return sess, nil
}
