package repository

import (
	"context"
	"cyberlearn_backend/internal/store"
	"cyberlearn_backend/internal/util"
	"errors"
	"fmt"
)

const (
	CollAssessments       = "assessments"
	CollAssessmentResults = "assessment_results"
	CollLearningPlans     = "learning_plans"
	CollLearningSessions  = "learning_sessions"
	CollChatMessages      = "chat_messages"
	CollUserProgress      = "user_progress"
)

func findOne[T any](ctx context.Context, coll store.Collection, query store.Document, notFound error) (*T, error) {
	doc, err := coll.FindOne(ctx, query)
	if err != nil {
		if errors.Is(err, store.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, util.Persistence("find", err)
	}
	var out T
	if err := store.Decode(doc, &out); err != nil {
		return nil, util.Persistence("decode", err)
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, cur *store.Cursor) ([]T, error) {
	docs, err := cur.All(ctx)
	if err != nil {
		return nil, util.Persistence("find", err)
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := store.Decode(d, &v); err != nil {
			return nil, util.Persistence("decode", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func insert(ctx context.Context, coll store.Collection, v any, what string) error {
	if err := coll.InsertOne(ctx, v); err != nil {
		return util.Persistence(fmt.Sprintf("insert %s", what), err)
	}
	return nil
}

// update sets fields on the document with the given id.
func update(ctx context.Context, coll store.Collection, id string, fields store.Document, notFound error) error {
	n, err := coll.UpdateOne(ctx, store.Document{"id": id}, fields)
	if err != nil {
		return util.Persistence("update", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
