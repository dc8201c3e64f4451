package helpers

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/aymerick/raymond"
)

// RootKey is the private data variable holding the root render context
const RootKey = "root"

// ErrInvalidHelper is returned when a helper is not a function with exactly
// one return value
var ErrInvalidHelper = errors.New("invalid helper")

// Registry maps helper names to functions. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	helpers  map[string]interface{}
	optional map[string]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		helpers:  make(map[string]interface{}),
		optional: make(map[string]int),
	}
}

// Register binds name to helper, replacing any previous binding
func (r *Registry) Register(name string, helper interface{}) error {
	if _, err := checkHelper(name, helper); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.helpers[name] = helper
	delete(r.optional, name)
	return nil
}

// RegisterOptional binds a helper whose trailing positional parameters may
// be left out by a template. Callers that pass fewer arguments get the
// missing ones as empty strings.
func (r *Registry) RegisterOptional(name string, helper interface{}) error {
	t, err := checkHelper(name, helper)
	if err != nil {
		return err
	}
	positional := t.NumIn()
	if positional > 0 && t.In(positional-1) == optionsType {
		positional--
	}
	if positional == 0 {
		return fmt.Errorf("%w: %s has no positional parameters", ErrInvalidHelper, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.helpers[name] = helper
	r.optional[name] = positional
	return nil
}

var optionsType = reflect.TypeOf((*raymond.Options)(nil))

func checkHelper(name string, helper interface{}) (reflect.Type, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidHelper)
	}

	t := reflect.TypeOf(helper)
	if t == nil || t.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %s is not a function", ErrInvalidHelper, name)
	}
	if t.NumOut() != 1 {
		return nil, fmt.Errorf("%w: %s must return exactly one value", ErrInvalidHelper, name)
	}
	return t, nil
}

// MustRegisterOptional is like RegisterOptional but panics on an invalid
// helper
func (r *Registry) MustRegisterOptional(name string, helper interface{}) {
	if err := r.RegisterOptional(name, helper); err != nil {
		panic(err)
	}
}

// Arities returns the positional parameter count of every helper
// registered with RegisterOptional
func (r *Registry) Arities() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int, len(r.optional))
	for name, n := range r.optional {
		out[name] = n
	}
	return out
}

// MustRegister is like Register but panics on an invalid helper
func (r *Registry) MustRegister(name string, helper interface{}) {
	if err := r.Register(name, helper); err != nil {
		panic(err)
	}
}

// Lookup returns the helper bound to name
func (r *Registry) Lookup(name string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.helpers[name]
	return h, ok
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.helpers))
	for name := range r.helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the bindings, ready for
// (*raymond.Template).RegisterHelpers
func (r *Registry) Map() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]interface{}, len(r.helpers))
	for name, h := range r.helpers {
		out[name] = h
	}
	return out
}

// Root returns the root render context. Outside an engine render it falls
// back to the current context when that is a map.
func Root(options *raymond.Options) map[string]interface{} {
	if frame := options.DataFrame(); frame != nil {
		if root, ok := frame.Get(RootKey).(map[string]interface{}); ok {
			return root
		}
	}
	if ctx, ok := options.Ctx().(map[string]interface{}); ok {
		return ctx
	}
	return nil
}

// argOr returns the positional argument when the template supplied one and
// the named hash option otherwise
func argOr(arg interface{}, options *raymond.Options, key string) interface{} {
	if str, ok := arg.(string); arg == nil || (ok && str == "") {
		return options.HashProp(key)
	}
	return arg
}
