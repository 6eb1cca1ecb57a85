package repository

import (
	"context"
	"strings"
	"time"

	"go-supermarket-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityProduct = "Product"

// ProductFilter narrows a product listing. Zero values mean "no restriction";
// IsActive nil matches both active and inactive rows.
type ProductFilter struct {
	Search     string
	CategoryID *uuid.UUID
	SupplierID *uuid.UUID
	IsActive   *bool
	LowStock   bool
	// ExpiringFrom/ExpiringTo bound expiration_date inclusively (dates, not instants).
	ExpiringFrom *time.Time
	ExpiringTo   *time.Time
}

type ProductOrder int

const (
	OrderNewest ProductOrder = iota
	OrderStockAsc
	OrderExpirationAsc
)

// Page selects a window of rows. Limit 0 returns every row.
type Page struct {
	Limit  int
	Offset int
	Order  ProductOrder
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*model.Product, error)
	FindAll(ctx context.Context, filter ProductFilter, page Page) ([]model.Product, int64, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	Update(ctx context.Context, product *model.Product) error
	SetActive(ctx context.Context, id uuid.UUID, active bool, updatedBy string) error
	ExistsByBarcode(ctx context.Context, barcode string, excludeID *uuid.UUID) (bool, error)
	CountActiveByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountActiveBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
	UpdateStock(ctx context.Context, id uuid.UUID, updatedBy string, apply func(current int) int) (*model.Product, int, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return translate(r.db.WithContext(ctx).Create(product).Error, entityProduct)
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Scopes(activeScope(includeInactive)).
		Preload("Category").
		Preload("Supplier").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, entityProduct)
	}
	return &product, nil
}

func (r *productRepo) FindAll(ctx context.Context, filter ProductFilter, page Page) ([]model.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Scopes(filterScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Scopes(filterScope(filter)).
		Preload("Category").
		Preload("Supplier")

	switch page.Order {
	case OrderStockAsc:
		query = query.Order("stock_quantity ASC").Order("name ASC")
	case OrderExpirationAsc:
		query = query.Order("expiration_date ASC").Order("name ASC")
	default:
		query = query.Order("created_at DESC").Order("id ASC")
	}
	if page.Limit > 0 {
		query = query.Limit(page.Limit).Offset(page.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepo) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Scopes(filterScope(filter)).Count(&total).Error
	return total, err
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	// Omit associations so a preloaded Category/Supplier is never upserted.
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
	return translate(err, entityProduct)
}

func (r *productRepo) SetActive(ctx context.Context, id uuid.UUID, active bool, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_by": updatedBy})
	if res.Error != nil {
		return translate(res.Error, entityProduct)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, entityProduct)
	}
	return nil
}

// ExistsByBarcode checks every row, active or not; excludeID skips the product
// being updated.
func (r *productRepo) ExistsByBarcode(ctx context.Context, barcode string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{}).Where("barcode = ?", barcode)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *productRepo) CountActiveByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Count(&count).Error
	return count, err
}

func (r *productRepo) CountActiveBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("supplier_id = ? AND is_active = ?", supplierID, true).
		Count(&count).Error
	return count, err
}

// UpdateStock locks the active product row, computes the new quantity from the
// current one and writes it in the same transaction, so concurrent updates on
// one product serialize. It returns the updated product and the previous stock.
func (r *productRepo) UpdateStock(ctx context.Context, id uuid.UUID, updatedBy string, apply func(current int) int) (*model.Product, int, error) {
	var (
		product  model.Product
		previous int
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("is_active = ?", true).
			First(&product, "id = ?", id).Error; err != nil {
			return err
		}

		previous = product.StockQuantity
		product.StockQuantity = apply(previous)
		product.UpdatedBy = updatedBy

		return tx.Model(&product).Updates(map[string]interface{}{
			"stock_quantity": product.StockQuantity,
			"updated_by":     updatedBy,
		}).Error
	})
	if err != nil {
		return nil, 0, translate(err, entityProduct)
	}
	return &product, previous, nil
}

// likeEscaper makes search input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func filterScope(f ProductFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.IsActive != nil {
			db = db.Where("is_active = ?", *f.IsActive)
		}
		if s := strings.TrimSpace(f.Search); s != "" {
			pattern := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
			db = db.Where(
				`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(barcode) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`,
				pattern, pattern, pattern,
			)
		}
		if f.CategoryID != nil {
			db = db.Where("category_id = ?", *f.CategoryID)
		}
		if f.SupplierID != nil {
			db = db.Where("supplier_id = ?", *f.SupplierID)
		}
		if f.LowStock {
			db = db.Where("stock_quantity <= min_stock_level")
		}
		if f.ExpiringFrom != nil {
			db = db.Where("expiration_date >= ?", f.ExpiringFrom.Format(model.DateLayout))
		}
		if f.ExpiringTo != nil {
			db = db.Where("expiration_date <= ?", f.ExpiringTo.Format(model.DateLayout))
		}
		return db
	}
}
