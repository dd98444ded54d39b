package lint

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/kotlint/pkg/suppress"
)

// Registry holds all registered rule providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	protos    map[string]Rule   // metadata instances, never visited
	aliases   map[string]string // alias -> qualified ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		protos:    make(map[string]Rule),
		aliases:   make(map[string]string),
	}
}

// Register adds a rule provider to the registry.
// If a rule with the same ID already exists, it is replaced.
func (r *Registry) Register(provider Provider) {
	proto := provider()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[proto.ID()] = provider
	r.protos[proto.ID()] = proto
}

// RegisterAlias maps an alias to a qualified rule ID.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// Get retrieves rule metadata by qualified ID, bare name, or alias.
// The returned instance must not be used to visit files; see New.
func (r *Registry) Get(key string) (Rule, bool) {
	id, ok := r.Resolve(key)
	if !ok {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.protos[id], true
}

// Resolve maps a qualified ID, bare name, or alias to the qualified ID.
func (r *Registry) Resolve(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key = strings.TrimSpace(key)
	if _, ok := r.providers[key]; ok {
		return key, true
	}
	if id, ok := r.aliases[key]; ok {
		return id, true
	}
	if id := suppress.NormalizeRuleID(key); id != key {
		if _, ok := r.providers[id]; ok {
			return id, true
		}
	}
	return "", false
}

// New returns a fresh rule instance for the qualified ID.
func (r *Registry) New(id string) (Rule, bool) {
	r.mu.RLock()
	provider, ok := r.providers[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return provider(), true
}

// Rules returns metadata for all registered rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.protos))
	for _, rule := range r.protos {
		rules = append(rules, rule)
	}
	slices.SortFunc(rules, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return rules
}

// IDs returns the qualified IDs of all registered rules, sorted.
func (r *Registry) IDs() []string {
	rules := r.Rules()
	ids := make([]string, len(rules))
	for i, rule := range rules {
		ids[i] = rule.ID()
	}
	return ids
}

// Order returns every registered rule in execution order.
// It fails with *CycleError or *MissingDependencyError.
func (r *Registry) Order() ([]Rule, error) {
	return SortRules(r.Rules())
}

// DefaultRegistry is the global registry used by the CLI.
//
//nolint:gochecknoglobals // Global registry is intentional for rule self-registration
var DefaultRegistry = NewRegistry()

// Register adds a provider to the default registry.
func Register(provider Provider) {
	DefaultRegistry.Register(provider)
}
