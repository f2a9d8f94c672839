package expressions

import (
	"fmt"
	"sync"

	"github.com/jmespath/go-jmespath"
)

// Evaluator runs JMESPath expressions, compiling each one once. A path that
// does not resolve yields nil, never an error. It is safe for concurrent use.
type Evaluator struct {
	mu       sync.RWMutex
	compiled map[string]*jmespath.JMESPath
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		compiled: make(map[string]*jmespath.JMESPath),
	}
}

// Evaluate runs expression against data.
func (e *Evaluator) Evaluate(expression string, data any) (any, error) {
	compiled, err := e.compile(expression)
	if err != nil {
		return nil, err
	}

	result, err := compiled.Search(data)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate expression %q: %w", expression, err)
	}
	return result, nil
}

// Precompile compiles every expression into the cache and returns the first
// one that does not compile.
func (e *Evaluator) Precompile(expressions ...string) error {
	for _, expression := range expressions {
		if _, err := e.compile(expression); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) compile(expression string) (*jmespath.JMESPath, error) {
	e.mu.RLock()
	compiled, ok := e.compiled[expression]
	e.mu.RUnlock()
	if ok {
		return compiled, nil
	}

	compiled, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", expression, err)
	}

	e.mu.Lock()
	e.compiled[expression] = compiled
	e.mu.Unlock()
	return compiled, nil
}
