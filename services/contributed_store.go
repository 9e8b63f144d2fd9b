package services

import (
	"context"
	"strings"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/foodid"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContributedStore implements foodid.ContributedFoodStore over the
// contributed_foods table.
type ContributedStore struct {
	db *gorm.DB
}

func NewContributedStore(db *gorm.DB) *ContributedStore {
	return &ContributedStore{db: db}
}

func (s *ContributedStore) SearchByOwnerAndName(ctx context.Context, userID uint, namePattern string, limit int) ([]foodid.ContributedEntry, error) {
	like := "%" + strings.ToLower(namePattern) + "%"
	var rows []models.ContributedFood
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) LIKE ?", userID, like).
		Order("usage_count DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return coreContributed(rows), nil
}

func (s *ContributedStore) SearchPopularByName(ctx context.Context, namePattern string, minUsage, limit int) ([]foodid.ContributedEntry, error) {
	like := "%" + strings.ToLower(namePattern) + "%"
	var rows []models.ContributedFood
	err := s.db.WithContext(ctx).
		Where("usage_count >= ? AND LOWER(name) LIKE ?", minUsage, like).
		Order("usage_count DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return coreContributed(rows), nil
}

// IncrementUsage is a single UPDATE so concurrent matches of the same entry
// never lose a count.
func (s *ContributedStore) IncrementUsage(ctx context.Context, entryID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.ContributedFood{}).
		Where("id = ?", entryID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1)).Error
}

func (s *ContributedStore) Create(ctx context.Context, entry *foodid.ContributedEntry) error {
	row := models.ContributedFood{
		UserID:     entry.UserID,
		Code:       "usr-" + uuid.NewString(),
		Name:       entry.Name,
		Category:   entry.Category,
		Descriptor: entry.Descriptor,
		Kcal:       entry.Kcal,
		UsageCount: 1,
	}
	row.FromProfile(entry.Profile)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	entry.ID = row.ID
	entry.UsageCount = row.UsageCount
	return nil
}

func coreContributed(rows []models.ContributedFood) []foodid.ContributedEntry {
	out := make([]foodid.ContributedEntry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Core())
	}
	return out
}
