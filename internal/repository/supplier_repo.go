package repository

import (
	"context"

	"go-supermarket-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entitySupplier = "Supplier"

type SupplierRepository interface {
	Create(ctx context.Context, supplier *model.Supplier) error
	FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*model.Supplier, error)
	FindAll(ctx context.Context, includeInactive bool) ([]model.SupplierWithCount, error)
	Update(ctx context.Context, supplier *model.Supplier) error
	SetActive(ctx context.Context, id uuid.UUID, active bool, updatedBy string) error
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *model.Supplier) error {
	return translate(r.db.WithContext(ctx).Create(supplier).Error, entitySupplier)
}

func (r *supplierRepo) FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.WithContext(ctx).Scopes(activeScope(includeInactive)).First(&supplier, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, entitySupplier)
	}
	return &supplier, nil
}

// FindAll orders by name and counts only active products per supplier.
func (r *supplierRepo) FindAll(ctx context.Context, includeInactive bool) ([]model.SupplierWithCount, error) {
	var rows []model.SupplierWithCount
	err := r.db.WithContext(ctx).Model(&model.Supplier{}).
		Select("suppliers.*, (SELECT COUNT(*) FROM products WHERE products.supplier_id = suppliers.id AND products.is_active = ?) AS products_count", true).
		Scopes(activeScope(includeInactive)).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *supplierRepo) Update(ctx context.Context, supplier *model.Supplier) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(supplier).Error, entitySupplier)
}

func (r *supplierRepo) SetActive(ctx context.Context, id uuid.UUID, active bool, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.Supplier{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_by": updatedBy})
	if res.Error != nil {
		return translate(res.Error, entitySupplier)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, entitySupplier)
	}
	return nil
}

func (r *supplierRepo) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Supplier{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}
