package foodid

import "context"

// CatalogEntry is a read-only record from the reference nutrition catalog.
// Name is often composite, a category segment and a descriptor segment
// joined by NameSeparator ("stew_pork-head").
type CatalogEntry struct {
	ID                 uint
	Code               string
	Name               string
	Category           string
	Descriptor         string
	RepresentativeName string
	Unit               string
	Kcal               float64
	Profile            NutrientProfile
}

// ContributedEntry is a user-submitted food created when the catalog had no
// match. UsageCount starts at 1 and grows every time the entry is re-selected.
type ContributedEntry struct {
	ID         uint
	UserID     uint
	Name       string
	Category   string
	Descriptor string
	Kcal       float64
	Profile    NutrientProfile
	UsageCount int
	Approved   bool
}

// CatalogQuery is the reference-catalog search surface consumed by the
// resolver. Implementations must apply the given limits so no call scans the
// whole catalog. FindByExactName matches the canonical or representative
// name after case/whitespace normalization and returns (nil, nil) on a miss.
type CatalogQuery interface {
	FindByExactName(ctx context.Context, name string) (*CatalogEntry, error)
	SearchByText(ctx context.Context, pattern string, limit int) ([]CatalogEntry, error)
	FindByCategory(ctx context.Context, category string, limit int) ([]CatalogEntry, error)
}

// ContributedFoodStore is the user-submitted catalog. Search results must be
// ordered by usage count descending. IncrementUsage must be a single atomic
// read-modify-write against the backing store.
type ContributedFoodStore interface {
	SearchByOwnerAndName(ctx context.Context, userID uint, namePattern string, limit int) ([]ContributedEntry, error)
	SearchPopularByName(ctx context.Context, namePattern string, minUsage, limit int) ([]ContributedEntry, error)
	IncrementUsage(ctx context.Context, entryID uint) error
	Create(ctx context.Context, entry *ContributedEntry) error
}
