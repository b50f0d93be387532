package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/quillpost/internal/assistservice"
	"github.com/sushihentaime/quillpost/internal/blogservice"
	"github.com/sushihentaime/quillpost/internal/common"
	"github.com/sushihentaime/quillpost/internal/engagementservice"
	"github.com/sushihentaime/quillpost/internal/galleryservice"
	"github.com/sushihentaime/quillpost/internal/socialservice"
	"github.com/sushihentaime/quillpost/internal/userservice"
)

type publishedEvent struct {
	key  common.BindingKey
	body []byte
}

// recordingProducer keeps every published event in memory.
type recordingProducer struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{key: key, body: msg})
	return nil
}

func (p *recordingProducer) published(key common.BindingKey) [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out [][]byte
	for _, e := range p.events {
		if e.key == key {
			out = append(out, e.body)
		}
	}
	return out
}

type testApplication struct {
	*application
	verifier *userservice.SessionVerifier
	host     *galleryservice.MockAssetHost
	gen      *assistservice.MockTextGenerator
	events   *recordingProducer
}

func newTestApplication(t *testing.T) *testApplication {
	db := common.TestDB("file://../../migrations", t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := loadConfig("../../.test.env")
	require.NoError(t, err)

	cache := common.NewCache(cfg.OverviewCacheTTL, 2*cfg.OverviewCacheTTL)
	verifier := userservice.NewSessionVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	host := new(galleryservice.MockAssetHost)
	gen := new(assistservice.MockTextGenerator)
	events := &recordingProducer{}

	app := &application{
		config:            cfg,
		logger:            logger,
		metrics:           newMetrics(),
		userService:       userservice.NewUserService(db, cache, verifier),
		blogService:       blogservice.NewBlogService(db, cache, cfg.OverviewCacheTTL),
		engagementService: engagementservice.NewEngagementService(db),
		socialService:     socialservice.NewSocialService(db),
		galleryService:    galleryservice.NewGalleryService(db, host),
		assistService:     assistservice.NewAssistService(assistservice.NewTemplateDrafter(gen), gen),
		broker:            events,
	}

	return &testApplication{application: app, verifier: verifier, host: host, gen: gen, events: events}
}

// token mints a session token for the external identity subject.
func (app *testApplication) token(t *testing.T, subject, username string) string {
	token, err := app.verifier.Sign(&userservice.SessionClaims{
		Name:     "User " + username,
		Username: username,
		Email:    subject + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)
	return token
}

// signUp syncs a new user through the API and returns its token and internal id.
func (app *testApplication) signUp(t *testing.T, ts *testServer, subject, username string) (string, int) {
	token := app.token(t, subject, username)

	status, _, body := ts.post(t, "/v1/profile", nil, &token)
	require.Equal(t, http.StatusOK, status)

	return token, int(body["id"].(float64))
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	if len(bytes.TrimSpace(responseBody)) > 0 {
		err = json.Unmarshal(responseBody, &envelope)
		if err != nil {
			t.Fatal(err)
		}
	}

	return res.StatusCode, res.Header, envelope
}

func (ts *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string, token *string) (int, http.Header, envelope) {
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) withJSON(t *testing.T, method, path string, data any, token *string) (int, http.Header, envelope) {
	if data == nil {
		return ts.do(t, method, path, nil, "", token)
	}

	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	return ts.do(t, method, path, bytes.NewReader(jsonPayload), "application/json", token)
}

func (ts *testServer) get(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, nil, "", token)
}

func (ts *testServer) post(t *testing.T, path string, data any, token *string) (int, http.Header, envelope) {
	return ts.withJSON(t, http.MethodPost, path, data, token)
}

func (ts *testServer) patch(t *testing.T, path string, data any, token *string) (int, http.Header, envelope) {
	return ts.withJSON(t, http.MethodPatch, path, data, token)
}

func (ts *testServer) delete(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, nil, "", token)
}
