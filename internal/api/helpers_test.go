package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"log/slog"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"folio/internal/auth"
	"folio/internal/kvstore"
	"folio/internal/portfolio"
)

const testPassword = "correct horse battery"

type seqIDs struct{ n int }

func (s *seqIDs) NextID() string {
	s.n++
	return strconv.Itoa(100 + s.n)
}

type testServer struct {
	router *gin.Engine
	site   *portfolio.Site
	store  *kvstore.MemoryStore
	auth   *auth.AuthService
	token  string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuth(t *testing.T) *auth.AuthService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	priv := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pub := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	svc, err := auth.NewAuthService(priv, pub, time.Hour, "admin", hash)
	require.NoError(t, err)
	return svc
}

// newTestServer wires the full router over an in-memory store. mutate may
// adjust Deps before routes are registered.
func newTestServer(t *testing.T, confirmDelete bool, mutate func(*Deps)) *testServer {
	t.Helper()
	return newTestServerWithOptions(t, portfolio.Options{ConfirmDelete: confirmDelete}, mutate)
}

func newTestServerWithOptions(t *testing.T, opts portfolio.Options, mutate func(*Deps)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if opts.IDs == nil {
		opts.IDs = &seqIDs{}
	}
	store := kvstore.NewMemoryStore()
	site := portfolio.NewSite(context.Background(), store, opts, discardLogger())
	authService := newTestAuth(t)
	token, err := authService.GenerateAccessToken("admin")
	require.NoError(t, err)

	deps := Deps{
		Site:           site,
		Auth:           authService,
		Logger:         discardLogger(),
		MaxUploadBytes: 1 << 20,
	}
	if mutate != nil {
		mutate(&deps)
	}

	router := NewRouter(discardLogger())
	RegisterRoutes(router, deps)
	return &testServer{router: router, site: site, store: store, auth: authService, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, rec.Body.String())
}
