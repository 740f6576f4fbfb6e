package strategy

import (
	"fmt"
	"strings"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

// Registry holds the registered replacement strategies in detection
// priority order. A project carrying fingerprints for several providers
// always resolves to the earliest registered one; that tie-break is the
// documented behavior, not an accident.
type Registry struct {
	order      []string
	strategies map[string]ReplacementStrategy
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]ReplacementStrategy),
	}
}

// DefaultRegistry returns the built-in strategies in their default
// priority order: privy, then reown, then web3modal.
func DefaultRegistry(targetVersion string) *Registry {
	r := NewRegistry()
	r.Register(NewPrivyStrategy(targetVersion, 0))
	r.Register(NewReownStrategy(targetVersion, 0))
	r.Register(NewWeb3ModalStrategy(targetVersion, 0))
	return r
}

// BuiltinNames returns the names of the built-in strategies in default
// priority order, for config validation and documentation.
func BuiltinNames() []string {
	return []string{"privy", "reown", "web3modal"}
}

// Register adds a strategy at the end of the priority order. Registering
// a name twice replaces the strategy but keeps its position.
func (r *Registry) Register(s ReplacementStrategy) {
	if _, exists := r.strategies[s.Name()]; !exists {
		r.order = append(r.order, s.Name())
	}
	r.strategies[s.Name()] = s
}

// Get returns the strategy with the given name.
func (r *Registry) Get(name string) (ReplacementStrategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}

// Names returns the registered strategy names in priority order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// SetOrder replaces the detection priority order. Every name must be
// registered; names left out keep their relative order after the listed
// ones.
func (r *Registry) SetOrder(names []string) error {
	seen := make(map[string]bool)
	order := make([]string, 0, len(r.order))
	for _, name := range names {
		if _, ok := r.strategies[name]; !ok {
			return fmt.Errorf("unknown strategy %q, registered: %s", name, strings.Join(r.Names(), ", "))
		}
		if !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	for _, name := range r.order {
		if !seen[name] {
			order = append(order, name)
		}
	}
	r.order = order
	return nil
}

// Detect returns the first strategy in priority order whose fingerprint
// matches the snapshot. Pure function of its input.
func (r *Registry) Detect(state *types.ProjectState) (ReplacementStrategy, bool) {
	for _, name := range r.order {
		s := r.strategies[name]
		if s.Matches(state) {
			return s, true
		}
	}
	return nil, false
}
