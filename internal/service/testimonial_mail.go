package service

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/entity"
)

const (
	verificationSubject = "Please Confirm Your Testimonial"
	pendingSubject      = "New Pending Testimonial for Approval"
)

func verificationLink(baseURL string, token string) string {
	return strings.TrimRight(baseURL, "/") + "/testimonial/verify/" + token
}

func buildVerificationMessage(payload entity.TestimonialPayload, link string, ttl time.Duration) Message {
	window := humanDuration(ttl)
	text := fmt.Sprintf(`Hello %s,

Thank you for your kind words. Your testimonial is: "%s"

To confirm your testimonial, please open the following link: %s

This link will expire in %s.`, payload.Name, payload.Testimonial, link, window)

	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>Thank you for your kind words. Your testimonial is: "%s"</p>
<p>To confirm your testimonial, please <a href="%s">click here</a>.</p>
<p>Or copy and paste this URL into your browser: <span style="word-wrap:break-word;">%s</span></p>
<p><small>This link will expire in %s.</small></p>`,
		html.EscapeString(payload.Name),
		html.EscapeString(payload.Testimonial),
		html.EscapeString(link),
		html.EscapeString(link),
		window,
	)

	return Message{To: payload.Email, Subject: verificationSubject, Text: text, HTML: body}
}

func buildPendingNotification(adminEmail string, t *entity.Testimonial) Message {
	text := fmt.Sprintf("There is a new testimonial pending approval from %s (%s).\n\nTestimonial: \"%s\"\n\nId: %s",
		t.Name, t.Email, t.Content, t.ID)
	body := fmt.Sprintf(`<p>There is a new testimonial pending approval from %s (%s).</p>
<p>Testimonial: "%s"</p>
<p>Id: %s</p>`,
		html.EscapeString(t.Name),
		html.EscapeString(t.Email),
		html.EscapeString(t.Content),
		t.ID,
	)
	return Message{To: adminEmail, Subject: pendingSubject, Text: text, HTML: body}
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return pluralize(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return pluralize(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
