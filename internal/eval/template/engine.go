package template

import (
	"fmt"
	"sync"

	"github.com/aymerick/raymond"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/helpers"
)

// Engine renders Handlebars templates with the helpers of a registry
type Engine struct {
	registry  *helpers.Registry
	logger    *zap.Logger
	cacheSize int

	cache map[string]*raymond.Template
	mu    sync.RWMutex
}

// NewEngine creates a new template engine. A cacheSize of 0 keeps every
// compiled template.
func NewEngine(registry *helpers.Registry, cacheSize int, logger *zap.Logger) *Engine {
	if registry == nil {
		registry = helpers.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheSize < 0 {
		cacheSize = 0
	}

	return &Engine{
		registry:  registry,
		logger:    logger,
		cacheSize: cacheSize,
		cache:     make(map[string]*raymond.Template),
	}
}

// Render renders a template with the given data. The data map is exposed
// to helpers as @root and may be modified by them.
func (e *Engine) Render(templateStr string, data map[string]interface{}) (string, error) {
	// Get or compile template
	tmpl, err := e.getTemplate(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	if data == nil {
		data = make(map[string]interface{})
	}
	frame := raymond.NewDataFrame()
	frame.Set(helpers.RootKey, data)

	result, err := tmpl.ExecWith(data, frame)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return result, nil
}

// RegisterHelper binds a helper, replacing any helper of the same name.
// Compiled templates are dropped so the next render sees the new binding.
func (e *Engine) RegisterHelper(name string, helper interface{}) error {
	if err := e.registry.Register(name, helper); err != nil {
		return err
	}
	e.ClearCache()
	return nil
}

// Helpers returns the names of the registered helpers
func (e *Engine) Helpers() []string {
	return e.registry.Names()
}

// getTemplate gets a compiled template from cache or compiles it
func (e *Engine) getTemplate(templateStr string) (*raymond.Template, error) {
	// Check cache first (read lock)
	e.mu.RLock()
	if tmpl, ok := e.cache[templateStr]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	// Compile the template (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if tmpl, ok := e.cache[templateStr]; ok {
		return tmpl, nil
	}

	tmpl, err := raymond.Parse(e.registry.Normalize(templateStr))
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	tmpl.RegisterHelpers(e.registry.Map())

	if e.cacheSize > 0 && len(e.cache) >= e.cacheSize {
		e.evictOne()
	}
	e.cache[templateStr] = tmpl

	e.logger.Debug("Compiled template", zap.Int("cached", len(e.cache)))

	return tmpl, nil
}

// evictOne drops an arbitrary cached template. Caller holds the write lock.
func (e *Engine) evictOne() {
	for key := range e.cache {
		delete(e.cache, key)
		return
	}
}

// ValidateTemplate validates a template without rendering it
func (e *Engine) ValidateTemplate(templateStr string) error {
	_, err := raymond.Parse(e.registry.Normalize(templateStr))
	return err
}

// CacheLen returns the number of compiled templates held
func (e *Engine) CacheLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*raymond.Template)
}
