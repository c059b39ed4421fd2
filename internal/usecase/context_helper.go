package usecase

import (
	"context"

	"hospital-scheduling/internal/delivery/http/middleware"

	"github.com/google/uuid"
)

// actorFromContext returns the authenticated user for audit rows, or nil
// when the call did not come through the HTTP layer.
func actorFromContext(ctx context.Context) *uuid.UUID {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}
