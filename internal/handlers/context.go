package handlers

import (
	"context"

	"github.com/courtside/sportsbuddy/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

func SetUserInContext(ctx context.Context, user *models.UserProfile) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func GetUserFromContext(ctx context.Context) *models.UserProfile {
	user, _ := ctx.Value(userContextKey).(*models.UserProfile)
	return user
}
