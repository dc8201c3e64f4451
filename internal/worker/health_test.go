package worker

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type brokenRenderer struct {
	out string
	err error
}

func (b brokenRenderer) Render(string, map[string]interface{}) (string, error) {
	return b.out, b.err
}

func serve(t *testing.T, hs *HealthServer, path string) (int, HealthResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestHealthServer_Endpoints(t *testing.T) {
	refused := errors.New("dial tcp: refused")

	tests := []struct {
		name       string
		path       string
		pingErr    error
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{"healthy", "/health", nil, http.StatusOK, "healthy",
			map[string]string{"redis": "healthy", "templates": "healthy"}},
		{"unhealthy", "/health", refused, http.StatusServiceUnavailable, "unhealthy",
			map[string]string{"redis": "unhealthy: dial tcp: refused", "templates": "healthy"}},
		{"ready", "/ready", nil, http.StatusOK, "ready",
			map[string]string{"redis": "healthy"}},
		{"not ready", "/ready", refused, http.StatusServiceUnavailable, "not ready",
			map[string]string{"redis": "unhealthy: dial tcp: refused"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorker(&fakeStreams{pingErr: tt.pingErr})
			hs := NewHealthServer(0, "render-test", zap.NewNop(),
				RedisCheck(&fakeStreams{pingErr: tt.pingErr}),
				RendererCheck(w.renderer),
			)

			code, resp := serve(t, hs, tt.path)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "render-test", resp.WorkerID)
			assert.Equal(t, tt.wantChecks, resp.Checks)
		})
	}
}

func TestHealthServer_RendererCheck(t *testing.T) {
	hs := NewHealthServer(0, "", zap.NewNop(),
		RendererCheck(brokenRenderer{out: "ok"}),
	)
	code, resp := serve(t, hs, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, `unhealthy: canary rendered "ok"`, resp.Checks["templates"])

	hs = NewHealthServer(0, "", zap.NewNop(),
		RendererCheck(brokenRenderer{err: errors.New("helper missing")}),
	)
	_, resp = serve(t, hs, "/health")
	assert.Equal(t, "unhealthy: helper missing", resp.Checks["templates"])

	// renderer failures do not gate readiness
	code, _ = serve(t, hs, "/ready")
	assert.Equal(t, http.StatusOK, code)
}

func TestHealthServer_ConsumerCheck(t *testing.T) {
	w := newTestWorker(&fakeStreams{})
	hs := NewHealthServer(0, "render-test", zap.NewNop(), ConsumerCheck(w))

	code, resp := serve(t, hs, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy: "+errNotConsuming.Error(), resp.Checks["consumer"])

	w.running.Store(true)
	code, _ = serve(t, hs, "/ready")
	assert.Equal(t, http.StatusOK, code)
}

func TestHealthServer_Metrics(t *testing.T) {
	renderDuration.Observe(0.001)
	hs := NewHealthServer(0, "", zap.NewNop())

	rec := httptest.NewRecorder()
	hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "render_worker_render_duration_seconds")
}
