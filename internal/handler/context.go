package handler

import (
	"context"

	"github.com/google/uuid"
)

type ContextKey string

var (
	SubCtxKey ContextKey = "sub"
)

func subject(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(SubCtxKey).(uuid.UUID)
	return id
}
