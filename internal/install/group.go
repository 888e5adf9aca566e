package install

// Groups is an ordered grouping of items by a derived key.
// Keys are kept in first-seen order and items keep their input order within a group.
type Groups[T any] struct {
	keys  []string
	items map[string][]T
}

// RootGroups maps a directory to the mod files found directly inside it
type RootGroups = Groups[string]

// GroupBy partitions items by key. Every item lands in exactly one group.
func GroupBy[T any](items []T, key func(T) string) *Groups[T] {
	g := &Groups[T]{items: make(map[string][]T)}
	for _, item := range items {
		k := key(item)
		if _, ok := g.items[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.items[k] = append(g.items[k], item)
	}
	return g
}

// Keys returns the group keys in first-seen order
func (g *Groups[T]) Keys() []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.keys...)
}

// Get returns the items for a key, or nil if the key is unknown
func (g *Groups[T]) Get(key string) []T {
	if g == nil {
		return nil
	}
	return g.items[key]
}

// Len returns the number of groups
func (g *Groups[T]) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Flatten concatenates all groups in key order
func (g *Groups[T]) Flatten() []T {
	if g == nil {
		return nil
	}
	var out []T
	for _, k := range g.keys {
		out = append(out, g.items[k]...)
	}
	return out
}
