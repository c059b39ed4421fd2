package middleware

import (
	"context"
	"errors"
	"net/http"

	"hospital-scheduling/internal/service"
	"hospital-scheduling/pkg/response"

	"github.com/google/uuid"
)

// ProfileMiddleware attaches the caller's doctor or patient id to the
// request. It must run after Authenticate.
type ProfileMiddleware struct {
	resolver service.ProfileResolver
}

func NewProfileMiddleware(resolver service.ProfileResolver) *ProfileMiddleware {
	return &ProfileMiddleware{resolver: resolver}
}

func (m *ProfileMiddleware) Doctor(next http.Handler) http.Handler {
	return m.resolve(DoctorIDKey, m.resolver.DoctorIDForUser, "Doctor profile not found", next)
}

func (m *ProfileMiddleware) Patient(next http.Handler) http.Handler {
	return m.resolve(PatientIDKey, m.resolver.PatientIDForUser, "Patient profile not found", next)
}

func (m *ProfileMiddleware) resolve(key contextKey, lookup func(context.Context, uuid.UUID) (int64, error), missing string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "User information not found")
			return
		}

		id, err := lookup(r.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrProfileNotFound) {
				response.Forbidden(w, missing)
				return
			}
			response.InternalServerError(w, "Failed to resolve profile")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), key, id)))
	})
}

// GetDoctorIDFromContext extracts the caller's doctor id from context
func GetDoctorIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(DoctorIDKey).(int64)
	return id, ok
}

// GetPatientIDFromContext extracts the caller's patient id from context
func GetPatientIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(PatientIDKey).(int64)
	return id, ok
}
