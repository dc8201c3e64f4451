package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// canaryTemplate exercises the helper catalog on every health request
const (
	canaryTemplate = `{{uppercase (split "ok,render" "," 0)}}`
	canaryOutput   = "OK"
	checkTimeout   = 2 * time.Second
)

var errNotConsuming = errors.New("not consuming the request stream")

// HealthCheck is a named dependency test. Checks marked Ready also gate
// the /ready endpoint.
type HealthCheck struct {
	Name  string
	Ready bool
	Check func(ctx context.Context) error
}

// RedisCheck pings the stream backend
func RedisCheck(client redis.Cmdable) HealthCheck {
	return HealthCheck{
		Name:  "redis",
		Ready: true,
		Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

// RendererCheck renders a fixed template and compares the output
func RendererCheck(renderer Renderer) HealthCheck {
	return HealthCheck{
		Name: "templates",
		Check: func(context.Context) error {
			out, err := renderer.Render(canaryTemplate, nil)
			if err != nil {
				return err
			}
			if out != canaryOutput {
				return fmt.Errorf("canary rendered %q", out)
			}
			return nil
		},
	}
}

// ConsumerCheck fails while the worker's read loop is not running
func ConsumerCheck(w *Worker) HealthCheck {
	return HealthCheck{
		Name:  "consumer",
		Ready: true,
		Check: func(context.Context) error {
			if !w.Running() {
				return errNotConsuming
			}
			return nil
		},
	}
}

// HealthServer serves /health, /ready and /metrics
type HealthServer struct {
	port     int
	workerID string
	checks   []HealthCheck
	logger   *zap.Logger
	server   *http.Server
}

// NewHealthServer creates a health server running checks in order
func NewHealthServer(port int, workerID string, logger *zap.Logger, checks ...HealthCheck) *HealthServer {
	return &HealthServer{
		port:     port,
		workerID: workerID,
		checks:   checks,
		logger:   logger,
	}
}

// Start listens in the background
func (hs *HealthServer) Start() error {
	hs.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", hs.port),
		Handler:           hs.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	hs.logger.Info("starting health server",
		zap.Int("port", hs.port),
		zap.Int("checks", len(hs.checks)),
	)

	go func() {
		if err := hs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			hs.logger.Error("health server error", zap.Error(err))
		}
	}()

	return nil
}

// Handler returns the mux serving /health, /ready and /metrics
func (hs *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", hs.handle(false, "healthy", "unhealthy"))
	mux.HandleFunc("/ready", hs.handle(true, "ready", "not ready"))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Stop shuts the listener down
func (hs *HealthServer) Stop() error {
	if hs.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hs.logger.Info("stopping health server")
	return hs.server.Shutdown(ctx)
}

// HealthResponse is the body of /health and /ready
type HealthResponse struct {
	Status   string            `json:"status"`
	WorkerID string            `json:"worker_id,omitempty"`
	Checks   map[string]string `json:"checks,omitempty"`
}

// handle runs every check (only Ready ones when readyOnly) and answers 503
// when any fails
func (hs *HealthServer) handle(readyOnly bool, ok, failed string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		resp := HealthResponse{
			Status:   ok,
			WorkerID: hs.workerID,
			Checks:   make(map[string]string),
		}
		code := http.StatusOK

		for _, c := range hs.checks {
			if readyOnly && !c.Ready {
				continue
			}
			if err := c.Check(ctx); err != nil {
				resp.Checks[c.Name] = fmt.Sprintf("unhealthy: %v", err)
				resp.Status = failed
				code = http.StatusServiceUnavailable
				hs.logger.Warn("health check failed",
					zap.String("check", c.Name),
					zap.Error(err),
				)
				continue
			}
			resp.Checks[c.Name] = "healthy"
		}

		hs.respondJSON(w, code, resp)
	}
}

func (hs *HealthServer) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		hs.logger.Error("failed to encode response", zap.Error(err))
	}
}
