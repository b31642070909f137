package service

import (
	"strings"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"
	"github.com/MinhMaxx/personal-website-backend/internal/utils"
)

type TestimonialConfig struct {
	VerificationTTL time.Duration
	ApprovalWindow  time.Duration
	VerifyBaseURL   string
	AdminEmail      string
	MailTimeout     time.Duration
}

type SubmitTestimonialInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Company     string `json:"company" validate:"omitempty,max=100"`
	Position    string `json:"position" validate:"omitempty,max=100"`
	Link        string `json:"link" validate:"omitempty,url,max=2048"`
	Testimonial string `json:"testimonial" validate:"required,max=5000"`
}

func (in SubmitTestimonialInput) normalized() SubmitTestimonialInput {
	return SubmitTestimonialInput{
		Name:        strings.TrimSpace(in.Name),
		Email:       utils.NormalizeEmail(in.Email),
		Company:     strings.TrimSpace(in.Company),
		Position:    strings.TrimSpace(in.Position),
		Link:        strings.TrimSpace(in.Link),
		Testimonial: strings.TrimSpace(in.Testimonial),
	}
}

func (in SubmitTestimonialInput) payload() entity.TestimonialPayload {
	return entity.TestimonialPayload{
		Name:        in.Name,
		Email:       in.Email,
		Company:     in.Company,
		Position:    in.Position,
		Link:        in.Link,
		Testimonial: in.Testimonial,
	}
}
