package service

import (
	"context"
	"time"

	"go-supermarket-inventory/internal/apperror"
	"go-supermarket-inventory/internal/model"
	"go-supermarket-inventory/internal/repository"
	"go-supermarket-inventory/internal/rules"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ProductQuery is a product listing request. IsActive nil means active only
// unless IncludeInactive is set, which drops the active filter entirely.
type ProductQuery struct {
	Page            int
	Limit           int
	Search          string
	CategoryID      *uuid.UUID
	SupplierID      *uuid.UUID
	IsActive        *bool
	IncludeInactive bool
	LowStock        bool
	Expiring        bool
}

type ProductService interface {
	List(ctx context.Context, q ProductQuery) (*model.ProductPage, error)
	Get(ctx context.Context, id uuid.UUID, includeInactive bool) (*model.ProductView, error)
	Create(ctx context.Context, req *CreateProductRequest, actor string) (*model.ProductView, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, actor string) (*model.ProductView, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error
	Restore(ctx context.Context, id uuid.UUID, actor string) error
	LowStock(ctx context.Context) ([]model.ProductView, error)
	Expiring(ctx context.Context) ([]model.ProductView, error)
	UpdateStock(ctx context.Context, id uuid.UUID, req *StockUpdateRequest, actor string) (*model.StockUpdateResult, error)
	Stats(ctx context.Context) (*model.ProductStats, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	now        Clock
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, suppliers repository.SupplierRepository, now Clock) ProductService {
	if now == nil {
		now = time.Now
	}
	return &productService{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		now:        now,
	}
}

func (s *productService) List(ctx context.Context, q ProductQuery) (page *model.ProductPage, err error) {
	ctx, span := startSpan(ctx, "ProductService.List")
	defer func() { endSpan(span, err) }()

	pageNum, limit := normalizePage(q.Page, q.Limit)
	filter := repository.ProductFilter{
		Search:     q.Search,
		CategoryID: q.CategoryID,
		SupplierID: q.SupplierID,
		LowStock:   q.LowStock,
	}
	switch {
	case q.IncludeInactive:
	case q.IsActive != nil:
		filter.IsActive = q.IsActive
	default:
		active := true
		filter.IsActive = &active
	}
	if q.Expiring {
		s.expiringWindow(&filter)
	}

	span.SetAttributes(attribute.Int("page", pageNum), attribute.Int("limit", limit))

	products, total, err := s.products.FindAll(ctx, filter, repository.Page{
		Limit:  limit,
		Offset: (pageNum - 1) * limit,
		Order:  repository.OrderNewest,
	})
	if err != nil {
		return nil, wrapInternal("fetch products", err)
	}

	return &model.ProductPage{
		Products:   model.ToViews(products, s.now()),
		Pagination: model.NewPagination(total, pageNum, limit),
	}, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID, includeInactive bool) (view *model.ProductView, err error) {
	ctx, span := startSpan(ctx, "ProductService.Get")
	defer func() { endSpan(span, err) }()

	product, err := s.products.FindByID(ctx, id, includeInactive)
	if err != nil {
		return nil, wrapInternal("fetch product", err)
	}
	v := product.ToView(s.now())
	return &v, nil
}

func (s *productService) Create(ctx context.Context, req *CreateProductRequest, actor string) (view *model.ProductView, err error) {
	ctx, span := startSpan(ctx, "ProductService.Create")
	defer func() { endSpan(span, err) }()

	req.Normalize()
	if err := validateAll(req); err != nil {
		return nil, err
	}

	product, err := req.toProduct()
	if err != nil {
		return nil, err
	}
	if err := rules.CheckProduct(factsOf(product)); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, product.CategoryID, product.SupplierID); err != nil {
		return nil, err
	}
	if err := s.checkBarcode(ctx, product.Barcode, nil); err != nil {
		return nil, err
	}

	product.CreatedBy = actor
	product.UpdatedBy = actor
	if err := s.products.Create(ctx, product); err != nil {
		return nil, barcodeConflict(wrapInternal("create product", err))
	}

	return s.Get(ctx, product.ID, true)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, actor string) (view *model.ProductView, err error) {
	ctx, span := startSpan(ctx, "ProductService.Update")
	defer func() { endSpan(span, err) }()

	existing, err := s.products.FindByID(ctx, id, false)
	if err != nil {
		return nil, wrapInternal("fetch product", err)
	}

	req.Normalize()
	if err := validateAll(req); err != nil {
		return nil, err
	}

	merged := *existing
	if err := req.ApplyTo(&merged); err != nil {
		return nil, err
	}
	if err := rules.CheckProduct(factsOf(&merged)); err != nil {
		return nil, err
	}

	// only references that actually change need to resolve
	var categoryID, supplierID *uuid.UUID
	if req.CategoryID.Set && !sameID(existing.CategoryID, merged.CategoryID) {
		categoryID = merged.CategoryID
	}
	if req.SupplierID.Set && !sameID(existing.SupplierID, merged.SupplierID) {
		supplierID = merged.SupplierID
	}
	if err := s.checkReferences(ctx, categoryID, supplierID); err != nil {
		return nil, err
	}
	if req.Barcode.Set && !sameString(existing.Barcode, merged.Barcode) {
		if err := s.checkBarcode(ctx, merged.Barcode, &id); err != nil {
			return nil, err
		}
	}

	merged.Category = nil
	merged.Supplier = nil
	merged.UpdatedBy = actor
	if err := s.products.Update(ctx, &merged); err != nil {
		return nil, barcodeConflict(wrapInternal("update product", err))
	}

	return s.Get(ctx, id, true)
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID, actor string) (err error) {
	ctx, span := startSpan(ctx, "ProductService.Delete")
	defer func() { endSpan(span, err) }()

	if _, err := s.products.FindByID(ctx, id, false); err != nil {
		return wrapInternal("fetch product", err)
	}
	return wrapInternal("delete product", s.products.SetActive(ctx, id, false, actor))
}

func (s *productService) Restore(ctx context.Context, id uuid.UUID, actor string) (err error) {
	ctx, span := startSpan(ctx, "ProductService.Restore")
	defer func() { endSpan(span, err) }()

	if _, err := s.products.FindByID(ctx, id, true); err != nil {
		return wrapInternal("fetch product", err)
	}
	return wrapInternal("restore product", s.products.SetActive(ctx, id, true, actor))
}

func (s *productService) LowStock(ctx context.Context) (views []model.ProductView, err error) {
	ctx, span := startSpan(ctx, "ProductService.LowStock")
	defer func() { endSpan(span, err) }()

	active := true
	products, _, err := s.products.FindAll(ctx,
		repository.ProductFilter{IsActive: &active, LowStock: true},
		repository.Page{Order: repository.OrderStockAsc},
	)
	if err != nil {
		return nil, wrapInternal("fetch low stock products", err)
	}
	return model.ToViews(products, s.now()), nil
}

func (s *productService) Expiring(ctx context.Context) (views []model.ProductView, err error) {
	ctx, span := startSpan(ctx, "ProductService.Expiring")
	defer func() { endSpan(span, err) }()

	active := true
	filter := repository.ProductFilter{IsActive: &active}
	s.expiringWindow(&filter)

	products, _, err := s.products.FindAll(ctx, filter, repository.Page{Order: repository.OrderExpirationAsc})
	if err != nil {
		return nil, wrapInternal("fetch expiring products", err)
	}
	return model.ToViews(products, s.now()), nil
}

func (s *productService) UpdateStock(ctx context.Context, id uuid.UUID, req *StockUpdateRequest, actor string) (result *model.StockUpdateResult, err error) {
	ctx, span := startSpan(ctx, "ProductService.UpdateStock")
	defer func() { endSpan(span, err) }()

	req.Normalize()
	if err := validateFirst(req); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("operation", req.Operation), attribute.Int("quantity", *req.Quantity))

	product, previous, err := s.products.UpdateStock(ctx, id, actor, func(current int) int {
		return applyStock(req.Operation, current, *req.Quantity)
	})
	if err != nil {
		return nil, wrapInternal("update stock", err)
	}

	return &model.StockUpdateResult{
		ID:            product.ID,
		Name:          product.Name,
		PreviousStock: previous,
		NewStock:      product.StockQuantity,
		Operation:     req.Operation,
	}, nil
}

// Stats runs one counting query per figure.
func (s *productService) Stats(ctx context.Context) (stats *model.ProductStats, err error) {
	ctx, span := startSpan(ctx, "ProductService.Stats")
	defer func() { endSpan(span, err) }()

	active := true
	expiring := repository.ProductFilter{IsActive: &active}
	s.expiringWindow(&expiring)

	stats = &model.ProductStats{}
	counts := []struct {
		filter repository.ProductFilter
		dest   *int64
	}{
		{repository.ProductFilter{}, &stats.TotalProducts},
		{repository.ProductFilter{IsActive: &active}, &stats.ActiveProducts},
		{repository.ProductFilter{IsActive: &active, LowStock: true}, &stats.LowStockProducts},
		{expiring, &stats.ExpiringProducts},
	}

	for _, c := range counts {
		n, err := s.products.Count(ctx, c.filter)
		if err != nil {
			return nil, wrapInternal("count products", err)
		}
		*c.dest = n
	}
	stats.InactiveProducts = stats.TotalProducts - stats.ActiveProducts
	return stats, nil
}

// expiringWindow restricts filter to expiration dates from today through
// today + model.ExpiringWindowDays.
func (s *productService) expiringWindow(filter *repository.ProductFilter) {
	today := model.DateOf(s.now())
	until := today.AddDate(0, 0, model.ExpiringWindowDays)
	filter.ExpiringFrom = &today
	filter.ExpiringTo = &until
}

func (s *productService) checkReferences(ctx context.Context, categoryID, supplierID *uuid.UUID) error {
	if categoryID != nil {
		ok, err := s.categories.ExistsActive(ctx, *categoryID)
		if err != nil {
			return wrapInternal("check category", err)
		}
		if !ok {
			return apperror.Reference("Category not found")
		}
	}
	if supplierID != nil {
		ok, err := s.suppliers.ExistsActive(ctx, *supplierID)
		if err != nil {
			return wrapInternal("check supplier", err)
		}
		if !ok {
			return apperror.Reference("Supplier not found")
		}
	}
	return nil
}

func (s *productService) checkBarcode(ctx context.Context, barcode *string, excludeID *uuid.UUID) error {
	if barcode == nil {
		return nil
	}
	exists, err := s.products.ExistsByBarcode(ctx, *barcode, excludeID)
	if err != nil {
		return wrapInternal("check barcode", err)
	}
	if exists {
		return apperror.Duplicate("Barcode already exists")
	}
	return nil
}

// barcodeConflict rewrites a unique index violation lost to a concurrent
// writer into the same message the pre-check gives.
func barcodeConflict(err error) error {
	if apperror.Is(err, apperror.KindDuplicate) {
		return apperror.Duplicate("Barcode already exists")
	}
	return err
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
