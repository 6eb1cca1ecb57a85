package repository

import (
	"context"

	"go-supermarket-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityCategory = "Category"

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*model.Category, error)
	FindAll(ctx context.Context, includeInactive bool) ([]model.CategoryWithCount, error)
	Update(ctx context.Context, category *model.Category) error
	SetActive(ctx context.Context, id uuid.UUID, active bool, updatedBy string) error
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return translate(r.db.WithContext(ctx).Create(category).Error, entityCategory)
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Scopes(activeScope(includeInactive)).First(&category, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, entityCategory)
	}
	return &category, nil
}

// FindAll orders by name and counts only active products per category.
func (r *categoryRepo) FindAll(ctx context.Context, includeInactive bool) ([]model.CategoryWithCount, error) {
	var rows []model.CategoryWithCount
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id AND products.is_active = ?) AS products_count", true).
		Scopes(activeScope(includeInactive)).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error, entityCategory)
}

func (r *categoryRepo) SetActive(ctx context.Context, id uuid.UUID, active bool, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_by": updatedBy})
	if res.Error != nil {
		return translate(res.Error, entityCategory)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, entityCategory)
	}
	return nil
}

func (r *categoryRepo) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}
