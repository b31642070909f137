package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

var ErrMailNotConfigured = errors.New("mail dispatcher not configured")

// ResendMailDispatcher delivers mail through the Resend HTTP API.
type ResendMailDispatcher struct {
	Client *resend.Client
	From   string
}

func NewResendMailDispatcher(apiKey string, from string, fromName string) *ResendMailDispatcher {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendMailDispatcher{}
	}
	client := resend.NewCustomClient(&http.Client{Timeout: 10 * time.Second}, apiKey)
	return &ResendMailDispatcher{
		Client: client,
		From:   formatSender(fromName, from),
	}
}

// WithBaseURL points the client at another API root. Used by tests.
func (s *ResendMailDispatcher) WithBaseURL(raw string) error {
	if s.Client == nil {
		return ErrMailNotConfigured
	}
	parsed, err := url.Parse(strings.TrimRight(raw, "/") + "/")
	if err != nil {
		return err
	}
	s.Client.BaseURL = parsed
	return nil
}

func (s *ResendMailDispatcher) Send(ctx context.Context, msg Message) error {
	if s.Client == nil {
		return ErrMailNotConfigured
	}
	request := &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
	}
	if _, err := s.Client.Emails.SendWithContext(ctx, request); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

func formatSender(name string, address string) string {
	if strings.TrimSpace(name) == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}
