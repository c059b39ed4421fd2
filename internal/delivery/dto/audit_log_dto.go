package dto

import (
	"time"

	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type AuditLogQuery struct {
	Action string `validate:"omitempty,max=100"`
	Limit  int    `validate:"omitempty,min=1,max=500"`
}

// Response DTOs

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role,omitempty"`
}

type AuditLogResponse struct {
	ID        int64         `json:"id"`
	User      *UserResponse `json:"user,omitempty"`
	Action    string        `json:"action"`
	Metadata  entity.JSON   `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
