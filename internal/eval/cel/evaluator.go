package cel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// RootVar is the variable holding the render context in expressions
const RootVar = "root"

// ErrNotBoolean is returned when a condition does not evaluate to a bool
var ErrNotBoolean = errors.New("expression is not boolean")

// Evaluator evaluates CEL conditions against a render context
type Evaluator struct {
	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewEvaluator creates a new CEL evaluator
func NewEvaluator() *Evaluator {
	env, err := cel.NewEnv(
		cel.Variable(RootVar, cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL environment: %v", err))
	}

	return &Evaluator{
		env:   env,
		cache: make(map[string]cel.Program),
	}
}

// Evaluate evaluates a CEL expression with the given variables
func (e *Evaluator) Evaluate(ctx context.Context, expression string, vars map[string]interface{}) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	program, err := e.getProgram(expression)
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression: %w", err)
	}

	if _, ok := vars[RootVar]; !ok {
		vars = withEmptyRoot(vars)
	}

	out, _, err := program.ContextEval(ctx, vars)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	return out.Value(), nil
}

// EvaluateBool evaluates a condition and requires a boolean result
func (e *Evaluator) EvaluateBool(ctx context.Context, expression string, vars map[string]interface{}) (bool, error) {
	result, err := e.Evaluate(ctx, expression, vars)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrNotBoolean, result)
	}
	return b, nil
}

func withEmptyRoot(vars map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(vars)+1)
	for k, v := range vars {
		out[k] = v
	}
	out[RootVar] = map[string]interface{}{}
	return out
}

// getProgram gets a compiled program from cache or compiles it
func (e *Evaluator) getProgram(expression string) (cel.Program, error) {
	// Check cache first (read lock)
	e.mu.RLock()
	if program, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	// Compile the expression (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if program, ok := e.cache[expression]; ok {
		return program, nil
	}

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("parse error: %w", issues.Err())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program generation error: %w", err)
	}

	e.cache[expression] = program

	return program, nil
}

// ValidateExpression compiles a condition without evaluating it. The
// expression must be boolean, or dynamic when it reads from root.
func (e *Evaluator) ValidateExpression(expression string) error {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return issues.Err()
	}

	switch out := ast.OutputType(); out.String() {
	case cel.BoolType.String(), cel.DynType.String():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrNotBoolean, out)
	}
}

// ClearCache clears the compiled program cache
func (e *Evaluator) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]cel.Program)
}
