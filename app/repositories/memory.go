package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/google/uuid"
)

// wait simulates backend latency. It returns early with ctx's error.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// MemoryCatalog serves products and categories from memory. It backs tests
// and the CATALOG_SOURCE=memory mode.
type MemoryCatalog struct {
	mu         sync.RWMutex
	delay      time.Duration
	products   []models.Product
	categories []models.Category
}

func NewMemoryCatalog(delay time.Duration) *MemoryCatalog {
	return &MemoryCatalog{delay: delay}
}

func (m *MemoryCatalog) Products() ProductRepositoryImpl {
	return memoryProducts{m}
}

func (m *MemoryCatalog) Categories() CategoryRepositoryImpl {
	return memoryCategories{m}
}

func (m *MemoryCatalog) categoryByID(id string) *models.Category {
	for i := range m.categories {
		if m.categories[i].ID == id {
			c := m.categories[i]
			return &c
		}
	}
	return nil
}

type memoryProducts struct {
	m *MemoryCatalog
}

func (r memoryProducts) GetProducts(ctx context.Context) ([]models.Product, error) {
	if err := wait(ctx, r.m.delay); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make([]models.Product, 0, len(r.m.products))
	for _, p := range r.m.products {
		p.Category = r.m.categoryByID(p.CategoryID)
		out = append(out, p)
	}
	return out, nil
}

func (r memoryProducts) GetByCategorySlug(ctx context.Context, slug string) ([]models.Product, error) {
	if err := wait(ctx, r.m.delay); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var out []models.Product
	for _, p := range r.m.products {
		c := r.m.categoryByID(p.CategoryID)
		if c != nil && c.Slug == slug {
			p.Category = c
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memoryProducts) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if err := wait(ctx, r.m.delay); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, p := range r.m.products {
		if p.ID == id {
			p.Category = r.m.categoryByID(p.CategoryID)
			return &p, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (r memoryProducts) Create(ctx context.Context, product *models.Product) error {
	if err := wait(ctx, r.m.delay); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt, product.UpdatedAt = now, now
	stored := *product
	stored.Category = nil
	r.m.products = append(r.m.products, stored)
	return nil
}

type memoryCategories struct {
	m *MemoryCatalog
}

func (r memoryCategories) Create(ctx context.Context, category *models.Category) error {
	if err := wait(ctx, r.m.delay); err != nil {
		return err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	now := time.Now()
	category.CreatedAt, category.UpdatedAt = now, now
	r.m.categories = append(r.m.categories, *category)
	return nil
}

func (r memoryCategories) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if err := wait(ctx, r.m.delay); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, c := range r.m.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (r memoryCategories) GetAll(ctx context.Context) ([]models.Category, error) {
	if err := wait(ctx, r.m.delay); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	return append([]models.Category(nil), r.m.categories...), nil
}

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	user.Email = strings.ToLower(user.Email)
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, ErrRecordNotFound
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrRecordNotFound
}

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]models.Order)}
}

func (r *MemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now
	r.orders[order.ID] = *order
	return nil
}

func (r *MemoryOrderRepository) FindByCode(ctx context.Context, orderCode string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.OrderCode == orderCode {
			return &o, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (r *MemoryOrderRepository) UpdatePaymentURL(ctx context.Context, orderID, paymentURL string) error {
	return r.update(orderID, func(o *models.Order) { o.PaymentURL = paymentURL })
}

func (r *MemoryOrderRepository) UpdateStatus(ctx context.Context, orderID string, status int) error {
	return r.update(orderID, func(o *models.Order) { o.Status = status })
}

func (r *MemoryOrderRepository) update(orderID string, fn func(*models.Order)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return ErrRecordNotFound
	}
	fn(&o)
	o.UpdatedAt = time.Now()
	r.orders[orderID] = o
	return nil
}
