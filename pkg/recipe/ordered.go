package recipe

import (
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// Map is a string-keyed bag that remembers declaration order. Every bag in a
// recipe context is a Map so that anything derived from it (env var lists,
// ingress selection) is reproducible.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// Set adds or replaces key. A new key goes to the end; replacing keeps the
// original position.
func (m *Map[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m Map[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m Map[V]) Len() int {
	return len(m.keys)
}

// First returns the earliest declared entry.
func (m Map[V]) First() (string, V, bool) {
	if len(m.keys) == 0 {
		var zero V
		return "", zero, false
	}
	return m.keys[0], m.values[m.keys[0]], true
}

// Keys returns a copy of the keys in declaration order.
func (m Map[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// All iterates in declaration order.
func (m Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// UnmarshalYAML decodes a mapping node entry by entry. JSON input is decoded
// by the same path since JSON is a YAML subset.
func (m *Map[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, node.ShortTag())
	}
	*m = Map[V]{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var v V
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		m.Set(key, v)
	}
	return nil
}
