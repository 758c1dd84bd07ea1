package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"equiplend/internal/domain"
	"equiplend/internal/pkg/diagnostics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGate struct {
	err    error
	called int64
}

func (g *stubGate) Require(_ context.Context, actorID int64, _ ...domain.Role) (*domain.Actor, error) {
	g.called = actorID
	if g.err != nil {
		return nil, g.err
	}
	return &domain.Actor{ID: actorID, Role: domain.RoleAdmin}, nil
}

type recordingSink struct {
	ops []string
}

func (s *recordingSink) Report(_ context.Context, op string, _ error) {
	s.ops = append(s.ops, op)
}

func withUser(id int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Next()
	}
}

func TestRequireRole_PassesAllowedActor(t *testing.T) {
	gate := &stubGate{}
	r := gin.New()
	r.GET("/x", withUser(3), RequireRole(gate, nil, domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(3), gate.called)
}

func TestRequireRole_DeniedIsForbiddenAndReported(t *testing.T) {
	gate := &stubGate{err: errors.Join(domain.ErrAccessDenied, errors.New("role student not permitted"))}
	sink := &recordingSink{}
	r := gin.New()
	r.GET("/x", withUser(3), RequireRole(gate, sink, domain.RoleAdmin), func(c *gin.Context) {
		t.Fatal("handler must not run")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ACCESS_DENIED")
	assert.NotContains(t, w.Body.String(), "student")
	assert.Equal(t, []string{"access.require_role"}, sink.ops)
}

func TestRequireRole_NoUser(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireRole(&stubGate{}, nil, domain.RoleAdmin), func(c *gin.Context) {
		t.Fatal("handler must not run")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		seen = diagnostics.RequestIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
}

type observation struct {
	op, outcome string
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (o *recordingObserver) Observe(op, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.obs = append(o.obs, observation{op, outcome})
}

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	o := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(o))
	r.GET("/items/:id", func(c *gin.Context) {
		if c.Param("id") == "missing" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/missing", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, []observation{
		{"GET /items/:id", "ok"},
		{"GET /items/:id", "not_found"},
		{"GET unmatched", "not_found"},
	}, o.obs)
}

func TestErrorLogger_RecoversPanicWithGenericBody(t *testing.T) {
	r := gin.New()
	r.Use(ErrorLogger())
	r.GET("/boom", func(c *gin.Context) {
		panic("db exploded at 10.0.0.5")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "request failed")
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}
