package dto

import (
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"
)

type SubmitTestimonialRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Link        string `json:"link"`
	Testimonial string `json:"testimonial"`
}

// PublicTestimonialResponse is what anonymous visitors see. The submitter's
// email is never exposed.
type PublicTestimonialResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Company     string    `json:"company,omitempty"`
	Position    string    `json:"position,omitempty"`
	Link        string    `json:"link,omitempty"`
	Testimonial string    `json:"testimonial"`
	Date        time.Time `json:"date"`
}

type AdminTestimonialResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Company       string     `json:"company,omitempty"`
	Position      string     `json:"position,omitempty"`
	Link          string     `json:"link,omitempty"`
	Testimonial   string     `json:"testimonial"`
	Date          time.Time  `json:"date"`
	AdminApproved bool       `json:"adminApproved"`
	ExpireAt      *time.Time `json:"expireAt,omitempty"`
}

type ApproveTestimonialResponse struct {
	Message     string                   `json:"message"`
	Testimonial AdminTestimonialResponse `json:"testimonial"`
}

func PublicTestimonialFromEntity(t *entity.Testimonial) PublicTestimonialResponse {
	return PublicTestimonialResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Company:     t.Company,
		Position:    t.Position,
		Link:        t.Link,
		Testimonial: t.Content,
		Date:        t.CreatedAt,
	}
}

func PublicTestimonialsFromEntities(testimonials []entity.Testimonial) []PublicTestimonialResponse {
	responses := make([]PublicTestimonialResponse, 0, len(testimonials))
	for i := range testimonials {
		responses = append(responses, PublicTestimonialFromEntity(&testimonials[i]))
	}
	return responses
}

func AdminTestimonialFromEntity(t *entity.Testimonial) AdminTestimonialResponse {
	return AdminTestimonialResponse{
		ID:            t.ID.String(),
		Name:          t.Name,
		Email:         t.Email,
		Company:       t.Company,
		Position:      t.Position,
		Link:          t.Link,
		Testimonial:   t.Content,
		Date:          t.CreatedAt,
		AdminApproved: t.AdminApproved,
		ExpireAt:      t.ExpireAt,
	}
}

func AdminTestimonialsFromEntities(testimonials []entity.Testimonial) []AdminTestimonialResponse {
	responses := make([]AdminTestimonialResponse, 0, len(testimonials))
	for i := range testimonials {
		responses = append(responses, AdminTestimonialFromEntity(&testimonials[i]))
	}
	return responses
}
