// Package registry provides a global registry for automaton rule factories.
// Rules register themselves in init() functions, allowing the session and the
// CLI to pick a rule by ID without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/lifeguide/internal/board"
)

// Rule is an automaton step function. It is the external producer of the
// board: given one generation it returns the next as a new grid.
type Rule interface {
	// ID returns a unique identifier for this rule (e.g., "life").
	ID() string

	// Title returns a human-readable name (e.g., "Conway's Life B3/S23").
	Title() string

	// Step computes the next generation. The input is never modified.
	Step(g *board.Grid) *board.Grid
}

// RuleInfo contains metadata about a registered rule.
type RuleInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new rule instance.
type Factory func() Rule

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a rule factory to the registry.
// Panics if a rule with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: rule %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered rules sorted by ID.
func List() []RuleInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]RuleInfo, 0, len(factories))
	for id := range factories {
		result = append(result, RuleInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a rule by its ID.
func Create(id string) (Rule, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown rule %q", id)
	}

	return f(), nil
}

// Exists checks if a rule with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
