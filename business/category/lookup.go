package category

import (
	"context"
	"fmt"
	"sort"
)

// Lookup is an immutable category name -> id map built once at startup and
// injected into consumers, instead of a lazily-initialized shared singleton.
type Lookup struct {
	ids   map[string]uint64
	names []string
}

func NewLookup(ctx context.Context, repo CategoryRepository) (*Lookup, error) {
	categories, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build category lookup: %w", err)
	}

	ids := make(map[string]uint64, len(categories))
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		ids[c.ProductCategory] = c.CategoryID
		names = append(names, c.ProductCategory)
	}
	sort.Strings(names)

	return &Lookup{ids: ids, names: names}, nil
}

func (l *Lookup) IDByName(name string) (uint64, bool) {
	id, ok := l.ids[name]
	return id, ok
}

func (l *Lookup) Has(name string) bool {
	_, ok := l.ids[name]
	return ok
}

// Names returns all known category names in lexicographic order.
func (l *Lookup) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}
