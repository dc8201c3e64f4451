package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/config"
)

var (
	// ErrMissingData is returned when a stream message has no data field
	ErrMissingData = errors.New("missing or invalid 'data' field")

	// ErrEmptyTemplate is returned for a render request without a template
	ErrEmptyTemplate = errors.New("empty template")
)

// Renderer renders a template against a context
type Renderer interface {
	Render(templateStr string, data map[string]interface{}) (string, error)
}

// Worker consumes render requests from a Redis stream
type Worker struct {
	id            string
	config        *config.Config
	redisClient   redis.Cmdable
	renderer      Renderer
	contexts      *ContextStore
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	running       atomic.Bool
	streamKey     string
	consumerGroup string
	resultStream  string
	now           func() time.Time
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient redis.Cmdable,
	renderer Renderer,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		renderer:      renderer,
		contexts:      NewContextStore(redisClient, logger),
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
		now:           time.Now,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting render worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	// Create consumer group if it doesn't exist
	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	w.wg.Add(1)
	w.running.Store(true)
	go w.processWork()

	w.logger.Info("render worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker and waits for the in-flight message
func (w *Worker) Stop() error {
	w.logger.Info("stopping render worker", zap.String("worker_id", w.id))

	w.cancel()
	w.wg.Wait()

	w.logger.Info("render worker stopped", zap.String("worker_id", w.id))
	return nil
}

// Running reports whether the read loop is active
func (w *Worker) Running() bool {
	return w.running.Load()
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP error means the group already exists, which is fine
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	defer w.wg.Done()
	defer w.running.Store(false)
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) || w.ctx.Err() != nil {
					continue
				}
				w.logger.Error("failed to read from stream",
					zap.Error(err),
				)
				w.sleep(time.Second)
				continue
			}

			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(w.ctx, message)
				}
			}
		}
	}
}

// handleMessage handles a single render request message
func (w *Worker) handleMessage(ctx context.Context, message redis.XMessage) {
	messageID := message.ID
	w.logger.Debug("processing render request",
		zap.String("message_id", messageID),
	)

	request, err := parseRenderRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse render request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		rendersTotal.WithLabelValues(statusInvalid).Inc()
		w.acknowledgeMessage(ctx, messageID)
		return
	}

	if err := w.processRenderRequest(ctx, request); err != nil {
		w.logger.Error("failed to process render request",
			zap.String("message_id", messageID),
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
		rendersTotal.WithLabelValues(statusFailed).Inc()
		w.publishError(ctx, request, err)
	} else {
		rendersTotal.WithLabelValues(statusRendered).Inc()
	}

	w.acknowledgeMessage(ctx, messageID)
}

// RenderRequest is a render job read from the work stream. ContextKey
// names a stored context that Context fields are merged over.
type RenderRequest struct {
	RequestID  string                 `json:"request_id"`
	Template   string                 `json:"template"`
	Context    map[string]interface{} `json:"context"`
	ContextKey string                 `json:"context_key,omitempty"`
}

// RenderResult is published to the result stream
type RenderResult struct {
	RequestID  string    `json:"request_id"`
	Output     string    `json:"output"`
	RenderedAt time.Time `json:"rendered_at"`
}

// RenderError is published to the error stream
type RenderError struct {
	RequestID string    `json:"request_id"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// parseRenderRequest parses a render request from a Redis message. A
// request without an id is given one.
func parseRenderRequest(values map[string]interface{}) (*RenderRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, ErrMissingData
	}

	var request RenderRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal render request: %w", err)
	}

	if request.Template == "" {
		return nil, ErrEmptyTemplate
	}
	if request.RequestID == "" {
		request.RequestID = uuid.NewString()
	}
	if request.Context == nil {
		request.Context = make(map[string]interface{})
	}

	return &request, nil
}

// processRenderRequest renders a request and publishes the output
func (w *Worker) processRenderRequest(ctx context.Context, request *RenderRequest) error {
	data, err := w.contexts.resolveContext(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to resolve context: %w", err)
	}

	timer := prometheus.NewTimer(renderDuration)
	output, err := w.renderer.Render(request.Template, data)
	timer.ObserveDuration()
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	result := RenderResult{
		RequestID:  request.RequestID,
		Output:     output,
		RenderedAt: w.now().UTC(),
	}
	if err := w.publish(ctx, w.resultStream, result); err != nil {
		return fmt.Errorf("failed to publish result: %w", err)
	}

	w.logger.Info("published render result",
		zap.String("request_id", request.RequestID),
		zap.Int("bytes", len(output)),
	)

	return nil
}

// publishError publishes an error event
func (w *Worker) publishError(ctx context.Context, request *RenderRequest, err error) {
	event := RenderError{
		RequestID: request.RequestID,
		Error:     err.Error(),
		Timestamp: w.now().UTC(),
	}

	if publishErr := w.publish(ctx, w.errorStream(), event); publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

func (w *Worker) errorStream() string {
	return w.resultStream + ".errors"
}

// publish adds payload as JSON to stream, retrying up to MaxRetries times
func (w *Worker) publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		if attempt > 0 {
			publishRetries.Inc()
			w.sleep(time.Duration(attempt) * 50 * time.Millisecond)
		}

		lastErr = w.redisClient.XAdd(ctx, &redis.XAddArgs{
			Stream: stream,
			Values: map[string]interface{}{
				"data": string(data),
			},
		}).Err()
		if lastErr == nil {
			return nil
		}

		w.logger.Warn("publish attempt failed",
			zap.String("stream", stream),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}

	return fmt.Errorf("failed to publish to stream %s: %w", stream, lastErr)
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(ctx context.Context, messageID string) {
	err := w.redisClient.XAck(ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}

// sleep waits for d or until the worker stops
func (w *Worker) sleep(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-w.ctx.Done():
	case <-t.C:
	}
}
