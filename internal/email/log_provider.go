package email

import (
	"context"
	"strings"
	"sync"

	"jobmarket_backend/internal/logger"
)

// LogProvider only logs outgoing mail. Used in development.
type LogProvider struct{}

func NewLogProvider() *LogProvider { return &LogProvider{} }

func (p *LogProvider) Name() string { return "log" }

func (p *LogProvider) Send(ctx context.Context, msg *Message) error {
	logger.CtxInfo(ctx, "email not sent (log provider)",
		"to", strings.Join(msg.To, ","),
		"subject", msg.Subject,
	)
	return nil
}

// MemoryProvider keeps every message in memory for tests.
type MemoryProvider struct {
	mu   sync.Mutex
	sent []Message
	// Err, when set, is returned from Send and nothing is recorded.
	Err error
}

func NewMemoryProvider() *MemoryProvider { return &MemoryProvider{} }

func (p *MemoryProvider) Name() string { return "memory" }

func (p *MemoryProvider) Send(_ context.Context, msg *Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.sent = append(p.sent, *msg)
	return nil
}

func (p *MemoryProvider) Sent() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Message, len(p.sent))
	copy(out, p.sent)
	return out
}
