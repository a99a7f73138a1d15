package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VenkateshW22/teamflow-api/internal/core/identity"
	"github.com/VenkateshW22/teamflow-api/internal/core/token"
)

var (
	routerOnce  sync.Once
	testRouter  http.Handler
	testCodec   *token.Codec
	routerBuild error
)

// newTestRouter wires a real router against lazily-connecting clients. The
// mongo driver only dials on first operation, so routes that never touch the
// database (health, policy rejections) are exercisable without a server.
// Built once per test binary: the prometheus middleware registers collectors
// in the default registry and a second registration would panic.
func newTestRouter(t *testing.T) (*token.Codec, http.Handler) {
	t.Helper()

	routerOnce.Do(func() {
		client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
		if err != nil {
			routerBuild = err
			return
		}
		rdb := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})

		testCodec = token.NewCodec("test-secret", time.Hour, 0)
		testRouter = NewRouter(client.Database("teamflow_test"), rdb, RouterConfig{Codec: testCodec}, nil, zerolog.Nop())
	})
	if routerBuild != nil {
		t.Fatalf("build test router: %v", routerBuild)
	}
	return testCodec, testRouter
}

func TestRouter_HealthIsPublic(t *testing.T) {
	_, h := newTestRouter(t)

	for _, path := range []string{"/health", "/api/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 without credentials, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"status":"UP"`) {
			t.Fatalf("%s: unexpected body: %s", path, rec.Body.String())
		}
	}
}

func TestRouter_MeRequiresAuthentication(t *testing.T) {
	_, h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not authenticated") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_ProtectedPathRejectedBeforeHandler(t *testing.T) {
	_, h := newTestRouter(t)

	// No such route exists, but the policy answers before routing does:
	// the client learns it is unauthenticated, not whether the path exists.
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_ExpiredTokenIsUnauthenticated(t *testing.T) {
	_, h := newTestRouter(t)

	expiredCodec := token.NewCodec("test-secret", time.Nanosecond, 0)
	signed, err := expiredCodec.Mint(identity.Identity{Subject: "alice"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestRouter_MetricsIsPublic(t *testing.T) {
	_, h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "teamflow_") {
		t.Fatalf("expected teamflow metrics in output")
	}
}
