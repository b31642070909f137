package dto

import (
	"encoding/json"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Code     string `json:"code,omitempty"`
}

type LoginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Errors []FieldErrorResponse `json:"errors"`
}

type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type SecurityLogResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	IPAddress *string         `json:"ipAddress,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func SecurityLogsFromEntities(logs []entity.SecurityLog) []SecurityLogResponse {
	out := make([]SecurityLogResponse, 0, len(logs))
	for _, log := range logs {
		out = append(out, SecurityLogResponse{
			ID:        log.ID.String(),
			Action:    string(log.Action),
			IPAddress: log.IPAddress,
			Metadata:  json.RawMessage(log.Metadata),
			CreatedAt: log.CreatedAt,
		})
	}
	return out
}
