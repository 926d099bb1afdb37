package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobmarket_backend/internal/app"
	"jobmarket_backend/internal/config"
	"jobmarket_backend/internal/email"
	"jobmarket_backend/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestServer is the full router behind httptest, on a private sqlite
// database, with outgoing email captured in Mail.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	App    *app.Server
	Mail   *email.MemoryProvider
	Config *config.Config
}

// NewTestServer starts a server; configure may adjust TestConfig first.
func NewTestServer(t *testing.T, configure ...func(*config.Config)) *TestServer {
	t.Helper()

	cfg := TestConfig(t)
	for _, fn := range configure {
		fn(cfg)
	}

	db := OpenTestDB(t, cfg.Database)

	store, err := storage.New(cfg.Storage)
	require.NoError(t, err, "storage")

	mail := email.NewMemoryProvider()
	mailer := email.NewMailer(mail, email.NewTemplateManager(), cfg.FrontendURL)

	srv := app.SetupRouter(cfg, app.Deps{
		DB:      db,
		Storage: store,
		Mailer:  mailer,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go srv.Hub.Run(ctx)

	server := httptest.NewServer(srv.Router)
	t.Cleanup(func() {
		server.Close()
		cancel()
		srv.Services.Async.Wait()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		App:    srv,
		Mail:   mail,
		Config: cfg,
	}
}

// Envelope is the shape of every JSON response.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Domain  string          `json:"domain"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// DataInto decodes the data field into v.
func (e *Envelope) DataInto(t *testing.T, v interface{}) {
	t.Helper()
	require.NotEmpty(t, e.Data, "response has no data")
	require.NoError(t, json.Unmarshal(e.Data, v))
}

// SendRequest sends body as JSON and decodes the envelope. token is sent as
// a bearer token when set.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, *Envelope) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env Envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	}
	return res, &env
}

// WaitForMail blocks until the async email dispatcher has drained and
// returns everything sent so far.
func (ts *TestServer) WaitForMail() []email.Message {
	ts.App.Services.Async.Wait()
	return ts.Mail.Sent()
}
