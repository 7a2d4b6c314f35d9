package repository

import "github.com/okian/mergington/internal/domain/model"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCatalog sets the initial roster. The catalog is copied.
func WithCatalog(c model.Catalog) Option {
	return func(s *MemStore) {
		if c != nil {
			s.activities = c.Clone()
		}
	}
}
