package rules

import (
	"fmt"
	"sort"
)

// Store provides read-only name lookup over loaded rules.
type Store struct {
	rules map[string]*Rule
}

// NewStore indexes rules by name. Duplicate names are a configuration error.
func NewStore(rules []*Rule) (*Store, error) {
	indexed := make(map[string]*Rule, len(rules))
	for _, rule := range rules {
		if _, exists := indexed[rule.Name]; exists {
			return nil, fmt.Errorf("duplicate rule name: %s", rule.Name)
		}
		indexed[rule.Name] = rule
	}
	return &Store{rules: indexed}, nil
}

// Get returns the named rule.
func (s *Store) Get(name string) (*Rule, bool) {
	rule, ok := s.rules[name]
	return rule, ok
}

// All returns every rule sorted by name.
func (s *Store) All() []*Rule {
	all := make([]*Rule, 0, len(s.rules))
	for _, rule := range s.rules {
		all = append(all, rule)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}
