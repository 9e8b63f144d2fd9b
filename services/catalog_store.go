package services

import (
	"context"
	"errors"
	"strings"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/foodid"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/models"

	"gorm.io/gorm"
)

// CatalogStore implements foodid.CatalogQuery over the food_catalog_entries
// table. The catalog is read-only at runtime except for ImportBatch, which
// the dev import endpoint uses to seed it.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) FindByExactName(ctx context.Context, name string) (*foodid.CatalogEntry, error) {
	var row models.FoodCatalogEntry
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = ? OR LOWER(representative_name) = ?", name, name).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	entry := row.Core()
	return &entry, nil
}

func (s *CatalogStore) SearchByText(ctx context.Context, pattern string, limit int) ([]foodid.CatalogEntry, error) {
	like := "%" + strings.ToLower(pattern) + "%"
	var rows []models.FoodCatalogEntry
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(representative_name) LIKE ? OR LOWER(descriptor) LIKE ?", like, like, like).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return coreEntries(rows), nil
}

func (s *CatalogStore) FindByCategory(ctx context.Context, category string, limit int) ([]foodid.CatalogEntry, error) {
	var rows []models.FoodCatalogEntry
	err := s.db.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(category)).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return coreEntries(rows), nil
}

// SearchEntries backs the /food/search endpoint; unlike SearchByText it
// returns the full rows for display.
func (s *CatalogStore) SearchEntries(ctx context.Context, q string, limit int) ([]models.FoodCatalogEntry, error) {
	like := "%" + strings.ToLower(q) + "%"
	var rows []models.FoodCatalogEntry
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(representative_name) LIKE ?", like, like).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ImportBatch upserts catalog entries by code. AutoMigrate owns the schema;
// the import only touches data.
func (s *CatalogStore) ImportBatch(ctx context.Context, rows []models.FoodCatalogEntry) (int, error) {
	imported := 0
	for i := range rows {
		row := &rows[i]
		var existing models.FoodCatalogEntry
		err := s.db.WithContext(ctx).Where("code = ?", row.Code).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
				return imported, err
			}
		case err != nil:
			return imported, err
		default:
			row.ID = existing.ID
			if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
				return imported, err
			}
		}
		imported++
	}
	return imported, nil
}

func coreEntries(rows []models.FoodCatalogEntry) []foodid.CatalogEntry {
	out := make([]foodid.CatalogEntry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Core())
	}
	return out
}
