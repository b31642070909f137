package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"
	"github.com/MinhMaxx/personal-website-backend/internal/repository"

	"gorm.io/datatypes"
)

// logSecurity writes an audit entry. Callers ignore the error: the audit
// trail never blocks the operation it describes.
func logSecurity(
	ctx context.Context,
	logs repository.SecurityLogRepository,
	at time.Time,
	ipAddress *string,
	action entity.SecurityAction,
	metadata map[string]any,
) error {
	if logs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}

	log := &entity.SecurityLog{
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
		CreatedAt: at,
	}
	return logs.Record(ctx, log)
}
