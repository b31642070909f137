package service

import (
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/utils"
)

type JWTAdminIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAdminIssuer) IssueAdminToken(subject string) (string, time.Duration, error) {
	if j.Manager == nil {
		return "", 0, utils.ErrInvalidToken
	}
	return j.Manager.IssueAdminToken(subject)
}

func (j JWTAdminIssuer) TTL() time.Duration {
	if j.Manager == nil {
		return utils.DefaultAdminTokenTTL
	}
	return j.Manager.TTL()
}
