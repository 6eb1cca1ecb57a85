package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go-supermarket-inventory/internal/apperror"
	"go-supermarket-inventory/internal/model"
	"go-supermarket-inventory/internal/repository"

	"github.com/google/uuid"
)

// fakeProducts keeps products in memory and mirrors the filter semantics of
// the GORM repository closely enough for service tests.
type fakeProducts struct {
	rows        map[uuid.UUID]*model.Product
	order       []uuid.UUID
	createErr   error
	lastFilter  repository.ProductFilter
	lastPage    repository.Page
	countFilter []repository.ProductFilter
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{rows: map[uuid.UUID]*model.Product{}}
}

func (f *fakeProducts) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().Add(time.Duration(len(f.order)) * time.Second)
	}
	cp := *p
	f.rows[p.ID] = &cp
	f.order = append(f.order, p.ID)
	return p
}

func (f *fakeProducts) Create(_ context.Context, p *model.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(p)
	return nil
}

func (f *fakeProducts) FindByID(_ context.Context, id uuid.UUID, includeInactive bool) (*model.Product, error) {
	p, ok := f.rows[id]
	if !ok || (!includeInactive && !p.IsActive) {
		return nil, apperror.NotFound("Product not found")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) match(p *model.Product, filter repository.ProductFilter) bool {
	if filter.IsActive != nil && p.IsActive != *filter.IsActive {
		return false
	}
	if s := strings.ToLower(filter.Search); s != "" {
		barcode := ""
		if p.Barcode != nil {
			barcode = *p.Barcode
		}
		if !strings.Contains(strings.ToLower(p.Name), s) &&
			!strings.Contains(strings.ToLower(barcode), s) &&
			!strings.Contains(strings.ToLower(p.Description), s) {
			return false
		}
	}
	if filter.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filter.CategoryID) {
		return false
	}
	if filter.SupplierID != nil && (p.SupplierID == nil || *p.SupplierID != *filter.SupplierID) {
		return false
	}
	if filter.LowStock && p.StockQuantity > p.MinStockLevel {
		return false
	}
	if filter.ExpiringFrom != nil || filter.ExpiringTo != nil {
		if p.ExpirationDate == nil {
			return false
		}
		d := model.DateOf(*p.ExpirationDate)
		if filter.ExpiringFrom != nil && d.Before(*filter.ExpiringFrom) {
			return false
		}
		if filter.ExpiringTo != nil && d.After(*filter.ExpiringTo) {
			return false
		}
	}
	return true
}

func (f *fakeProducts) FindAll(_ context.Context, filter repository.ProductFilter, page repository.Page) ([]model.Product, int64, error) {
	f.lastFilter, f.lastPage = filter, page

	var out []model.Product
	for _, id := range f.order {
		if p := f.rows[id]; f.match(p, filter) {
			out = append(out, *p)
		}
	}
	switch page.Order {
	case repository.OrderStockAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].StockQuantity < out[j].StockQuantity })
	case repository.OrderExpirationAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ExpirationDate.Before(*out[j].ExpirationDate) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}

	total := int64(len(out))
	if page.Limit > 0 {
		if page.Offset >= len(out) {
			return nil, total, nil
		}
		end := page.Offset + page.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[page.Offset:end]
	}
	return out, total, nil
}

func (f *fakeProducts) Count(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	f.countFilter = append(f.countFilter, filter)
	_, total, err := f.FindAll(ctx, filter, repository.Page{})
	return total, err
}

func (f *fakeProducts) Update(_ context.Context, p *model.Product) error {
	if _, ok := f.rows[p.ID]; !ok {
		return apperror.NotFound("Product not found")
	}
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProducts) SetActive(_ context.Context, id uuid.UUID, active bool, updatedBy string) error {
	p, ok := f.rows[id]
	if !ok {
		return apperror.NotFound("Product not found")
	}
	p.IsActive = active
	p.UpdatedBy = updatedBy
	return nil
}

func (f *fakeProducts) ExistsByBarcode(_ context.Context, barcode string, excludeID *uuid.UUID) (bool, error) {
	for id, p := range f.rows {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if p.Barcode != nil && *p.Barcode == barcode {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProducts) countActive(match func(*model.Product) bool) int64 {
	var n int64
	for _, p := range f.rows {
		if p.IsActive && match(p) {
			n++
		}
	}
	return n
}

func (f *fakeProducts) CountActiveByCategory(_ context.Context, id uuid.UUID) (int64, error) {
	return f.countActive(func(p *model.Product) bool { return p.CategoryID != nil && *p.CategoryID == id }), nil
}

func (f *fakeProducts) CountActiveBySupplier(_ context.Context, id uuid.UUID) (int64, error) {
	return f.countActive(func(p *model.Product) bool { return p.SupplierID != nil && *p.SupplierID == id }), nil
}

func (f *fakeProducts) UpdateStock(_ context.Context, id uuid.UUID, updatedBy string, apply func(int) int) (*model.Product, int, error) {
	p, ok := f.rows[id]
	if !ok || !p.IsActive {
		return nil, 0, apperror.NotFound("Product not found")
	}
	previous := p.StockQuantity
	p.StockQuantity = apply(previous)
	p.UpdatedBy = updatedBy
	cp := *p
	return &cp, previous, nil
}

// fakeCategories serves both CategoryRepository and, via fakeSuppliers, the
// supplier store.
type fakeCategories struct {
	rows map[uuid.UUID]*model.Category
}

func newFakeCategories(cats ...*model.Category) *fakeCategories {
	f := &fakeCategories{rows: map[uuid.UUID]*model.Category{}}
	for _, c := range cats {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		f.rows[c.ID] = c
	}
	return f
}

func (f *fakeCategories) Create(_ context.Context, c *model.Category) error {
	c.ID = uuid.New()
	f.rows[c.ID] = c
	return nil
}

func (f *fakeCategories) FindByID(_ context.Context, id uuid.UUID, includeInactive bool) (*model.Category, error) {
	c, ok := f.rows[id]
	if !ok || (!includeInactive && !c.IsActive) {
		return nil, apperror.NotFound("Category not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategories) FindAll(context.Context, bool) ([]model.CategoryWithCount, error) {
	return nil, nil
}

func (f *fakeCategories) Update(_ context.Context, c *model.Category) error {
	f.rows[c.ID] = c
	return nil
}

func (f *fakeCategories) SetActive(_ context.Context, id uuid.UUID, active bool, _ string) error {
	c, ok := f.rows[id]
	if !ok {
		return apperror.NotFound("Category not found")
	}
	c.IsActive = active
	return nil
}

func (f *fakeCategories) ExistsActive(_ context.Context, id uuid.UUID) (bool, error) {
	c, ok := f.rows[id]
	return ok && c.IsActive, nil
}

type fakeSuppliers struct {
	rows map[uuid.UUID]*model.Supplier
}

func newFakeSuppliers(sups ...*model.Supplier) *fakeSuppliers {
	f := &fakeSuppliers{rows: map[uuid.UUID]*model.Supplier{}}
	for _, s := range sups {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		f.rows[s.ID] = s
	}
	return f
}

func (f *fakeSuppliers) Create(_ context.Context, s *model.Supplier) error {
	s.ID = uuid.New()
	f.rows[s.ID] = s
	return nil
}

func (f *fakeSuppliers) FindByID(_ context.Context, id uuid.UUID, includeInactive bool) (*model.Supplier, error) {
	s, ok := f.rows[id]
	if !ok || (!includeInactive && !s.IsActive) {
		return nil, apperror.NotFound("Supplier not found")
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSuppliers) FindAll(context.Context, bool) ([]model.SupplierWithCount, error) {
	return nil, nil
}

func (f *fakeSuppliers) Update(_ context.Context, s *model.Supplier) error {
	f.rows[s.ID] = s
	return nil
}

func (f *fakeSuppliers) SetActive(_ context.Context, id uuid.UUID, active bool, _ string) error {
	s, ok := f.rows[id]
	if !ok {
		return apperror.NotFound("Supplier not found")
	}
	s.IsActive = active
	return nil
}

func (f *fakeSuppliers) ExistsActive(_ context.Context, id uuid.UUID) (bool, error) {
	s, ok := f.rows[id]
	return ok && s.IsActive, nil
}

type fakeUsers struct {
	byName    map[string]*model.User
	createErr error
	touched   bool
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byName: map[string]*model.User{}}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		f.byName[u.Username] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	u.ID = uuid.New()
	f.byName[u.Username] = u
	return nil
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	return u, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (f *fakeUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range f.byName {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	u, err := f.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

func (f *fakeUsers) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.touched = true
	return nil
}

type fakeRoles struct {
	roles []model.Role
}

func newFakeRoles() *fakeRoles {
	f := &fakeRoles{}
	for i, r := range model.DefaultRoles {
		r.ID = uint(i + 1)
		f.roles = append(f.roles, r)
	}
	return f
}

func (f *fakeRoles) FindAll(context.Context) ([]model.Role, error) { return f.roles, nil }

func (f *fakeRoles) FindByID(_ context.Context, id uint) (*model.Role, error) {
	for i := range f.roles {
		if f.roles[i].ID == id {
			return &f.roles[i], nil
		}
	}
	return nil, apperror.NotFound("Role not found")
}

func (f *fakeRoles) FindByName(_ context.Context, name string) (*model.Role, error) {
	for i := range f.roles {
		if strings.EqualFold(f.roles[i].Name, name) {
			return &f.roles[i], nil
		}
	}
	return nil, apperror.NotFound("Role not found")
}

func (f *fakeRoles) SeedDefaults(context.Context) error { return nil }

type fakeTokens struct{}

func (fakeTokens) GenerateToken(id uuid.UUID, username, role string) (string, time.Time, error) {
	return "token-" + username + "-" + role, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}
