package services_test

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"jobmarket_backend/internal/auth"
	"jobmarket_backend/internal/config"
	"jobmarket_backend/internal/email"
	"jobmarket_backend/internal/services"
	"jobmarket_backend/internal/storage"
	"jobmarket_backend/test/helpers"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const strongPassword = "P@ssw0rd1"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type recordingNotifier struct {
	mu     sync.Mutex
	events map[string][]interface{}
}

func (n *recordingNotifier) SendToUser(userID string, event interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.events == nil {
		n.events = make(map[string][]interface{})
	}
	n.events[userID] = append(n.events[userID], event)
}

func (n *recordingNotifier) For(userID string) []interface{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.events[userID]
}

type fixture struct {
	ctx      context.Context
	cfg      *config.Config
	db       *gorm.DB
	mail     *email.MemoryProvider
	clock    *testClock
	store    *storage.LocalStorage
	notifier *recordingNotifier
	svc      *services.ServiceContainer
}

type fixtureOption func(*config.Config)

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	cfg := helpers.TestConfig(t)
	for _, opt := range opts {
		opt(cfg)
	}

	store, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	require.NoError(t, err)

	f := &fixture{
		ctx:      context.Background(),
		cfg:      cfg,
		db:       helpers.OpenTestDB(t, cfg.Database),
		mail:     email.NewMemoryProvider(),
		clock:    &testClock{now: time.Now().UTC()},
		store:    store,
		notifier: &recordingNotifier{},
	}
	f.svc = services.NewServiceContainer(services.Dependencies{
		Config:   cfg,
		Storage:  store,
		Mailer:   email.NewMailer(f.mail, email.NewTemplateManager(), cfg.FrontendURL),
		Notifier: f.notifier,
		Clock:    f.clock,
	})
	t.Cleanup(f.svc.Async.Wait)
	return f
}

// sentTo waits for pending emails and returns those addressed to "to".
func (f *fixture) sentTo(to string) []email.Message {
	f.svc.Async.Wait()
	var out []email.Message
	for _, m := range f.mail.Sent() {
		for _, rcpt := range m.To {
			if rcpt == to {
				out = append(out, m)
			}
		}
	}
	return out
}

// linkParam pulls a query parameter out of the link in an email body.
func linkParam(t *testing.T, msg email.Message, key string) string {
	t.Helper()
	for _, field := range strings.Fields(msg.TextBody) {
		if !strings.HasPrefix(field, "http") {
			continue
		}
		u, err := url.Parse(field)
		require.NoError(t, err)
		if v := u.Query().Get(key); v != "" {
			return v
		}
	}
	t.Fatalf("no %q in email link: %s", key, msg.TextBody)
	return ""
}

var _ auth.Clock = (*testClock)(nil)
