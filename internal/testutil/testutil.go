// Package testutil holds the fixtures shared by the repository, service and
// handler tests.
package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MinhMaxx/personal-website-backend/config"
	"github.com/MinhMaxx/personal-website-backend/internal/service"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory SQLite database private to t.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(context.Background(), db))
	return db
}

// FixedClock is a manually advanced clock.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FakeMailer records every message. When Err is set, Send fails with it and
// nothing is recorded.
type FakeMailer struct {
	mu   sync.Mutex
	Sent []service.Message
	Err  error
}

func (m *FakeMailer) Send(_ context.Context, msg service.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *FakeMailer) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

func (m *FakeMailer) Messages() []service.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.Message, len(m.Sent))
	copy(out, m.Sent)
	return out
}

// LastToken extracts the verification token from the newest message sent
// to the given address.
func (m *FakeMailer) LastToken(to string) string {
	const marker = "/testimonial/verify/"

	messages := m.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].To != to {
			continue
		}
		text := messages[i].Text
		idx := strings.Index(text, marker)
		if idx < 0 {
			continue
		}
		rest := text[idx+len(marker):]
		if end := strings.IndexAny(rest, " \n\t\"<"); end >= 0 {
			rest = rest[:end]
		}
		return rest
	}
	return ""
}
