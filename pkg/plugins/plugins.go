// Package plugins lets callers override individual output fields.
//
// An Override is offered every eligible field of a record as it is assembled,
// together with the computed value and the raw document. The first override,
// in registration order, that answers with a non-nil value replaces the
// computed value. Answers are decoded into the field's Go type; an answer that
// does not fit fails the whole record with an error naming the field.
//
//	chain := plugins.NewChain()
//	_ = chain.Register(plugins.UppercaseTitle{})
//	p := parser.New(parser.WithChain(chain))
//
// Values are offered in their generic JSON form: strings, float64 numbers,
// bools, []any and map[string]any, or nil when the field is absent.
package plugins

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrAlreadyRegistered = errors.New("override already registered")
	ErrNotComparable     = errors.New("override must be comparable to be unregistered")
)

// Override replaces a field value. Returning ok=false, or a nil value, leaves
// the field to the next override.
type Override interface {
	Override(field string, value any, document any) (any, bool)
}

// Named overrides report their name in errors and listings.
type Named interface {
	Name() string
}

// NameOf returns the reported name of o, falling back to its type.
func NameOf(o Override) string {
	if named, ok := o.(Named); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", o)
}

// FuncOverride adapts a function. Use Func to build one; the pointer keeps it
// comparable so it can be unregistered.
type FuncOverride struct {
	name string
	fn   func(field string, value any, document any) (any, bool)
}

func Func(name string, fn func(field string, value any, document any) (any, bool)) *FuncOverride {
	return &FuncOverride{name: name, fn: fn}
}

func (f *FuncOverride) Override(field string, value any, document any) (any, bool) {
	return f.fn(field, value, document)
}

func (f *FuncOverride) Name() string {
	return f.name
}

// Chain is an ordered set of overrides. It is safe for concurrent use.
type Chain struct {
	mu        sync.RWMutex
	overrides []Override
}

func NewChain(overrides ...Override) *Chain {
	c := &Chain{}
	for _, o := range overrides {
		_ = c.Register(o)
	}
	return c
}

// Register appends o to the chain. Overrides are consulted in the order they
// were registered.
func (c *Chain) Register(o Override) error {
	if o == nil {
		return errors.New("override is nil")
	}
	if !reflect.TypeOf(o).Comparable() {
		return fmt.Errorf("%w: %s", ErrNotComparable, NameOf(o))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.overrides {
		if existing == o {
			return fmt.Errorf("%w: %s", ErrAlreadyRegistered, NameOf(o))
		}
	}
	c.overrides = append(c.overrides, o)
	return nil
}

// Unregister removes o and reports whether it was registered.
func (c *Chain) Unregister(o Override) bool {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.overrides {
		if existing == o {
			c.overrides = append(c.overrides[:i:i], c.overrides[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the registered overrides in consultation order.
func (c *Chain) List() []Override {
	return c.Snapshot()
}

func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.overrides)
}

// Clear removes every override.
func (c *Chain) Clear() {
	c.mu.Lock()
	c.overrides = nil
	c.mu.Unlock()
}

// Snapshot copies the current chain. A parse takes one snapshot when it
// starts and uses it for every field, so concurrent registrations never
// change a record halfway through.
func (c *Chain) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(Snapshot, len(c.overrides))
	copy(out, c.overrides)
	return out
}

var defaultChain = NewChain()

// Default returns the process-wide chain parsers use unless given another.
func Default() *Chain {
	return defaultChain
}

// Register adds o to the default chain.
func Register(o Override) error {
	return defaultChain.Register(o)
}

// Unregister removes o from the default chain.
func Unregister(o Override) bool {
	return defaultChain.Unregister(o)
}

// List returns the overrides of the default chain.
func List() []Override {
	return defaultChain.List()
}
