package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
)

// --- users ---

type stubAuthRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID domain.ID
	err    error
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := domain.NormalizeEmail(user.Email)
	if _, exists := r.users[email]; exists {
		return nil, domain.ErrUserExists
	}
	created := *user
	created.ID = r.nextID
	created.Email = email
	created.CreatedAt = time.Now().UTC()
	r.nextID++
	r.users[email] = &created
	out := created
	return &out, nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// --- pages ---

// memPageRepo mirrors the SQL repository: coalescing updates and an
// updated_at that always moves forward.
type memPageRepo struct {
	mu     sync.Mutex
	pages  map[domain.ID]*domain.Page
	nextID domain.ID
	now    func() time.Time
	finds  int
}

func newMemPageRepo() *memPageRepo {
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return &memPageRepo{
		pages:  make(map[domain.ID]*domain.Page),
		nextID: 1,
		now:    func() time.Time { return fixed },
	}
}

func (r *memPageRepo) FindByID(_ context.Context, id domain.ID) (*domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	p, ok := r.pages[id]
	if !ok {
		return nil, domain.ErrPageNotFound
	}
	out := *p
	return &out, nil
}

func (r *memPageRepo) ListByOwner(_ context.Context, ownerID domain.ID) ([]*domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Page, 0)
	for _, p := range r.pages {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPageRepo) Create(_ context.Context, ownerID domain.ID, title, content string) (*domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	p := &domain.Page{ID: r.nextID, Title: title, Content: content, OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}
	r.pages[p.ID] = p
	r.nextID++
	out := *p
	return &out, nil
}

func (r *memPageRepo) Update(_ context.Context, id domain.ID, u domain.PageUpdate) (*domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[id]
	if !ok {
		return nil, domain.ErrPageNotFound
	}
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	next := r.now()
	if floor := p.UpdatedAt.Add(time.Microsecond); next.Before(floor) {
		next = floor
	}
	p.UpdatedAt = next
	out := *p
	return &out, nil
}

func (r *memPageRepo) Delete(_ context.Context, id domain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pages[id]; !ok {
		return domain.ErrPageNotFound
	}
	delete(r.pages, id)
	return nil
}

func (r *memPageRepo) seed(owner domain.ID, title, content string) *domain.Page {
	p, _ := r.Create(context.Background(), owner, title, content)
	return p
}

func (r *memPageRepo) get(id domain.ID) *domain.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[id]
	if !ok {
		return nil
	}
	out := *p
	return &out
}

// --- audit ---

type recordingAuditor struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *recordingAuditor) Record(e domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAuditor) recorded() []domain.AuditEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.AuditEvent(nil), a.events...)
}

// --- cache ---

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// --- content ---

type memContentRepo struct {
	mu     sync.Mutex
	stored *ports.StoredContent
	loads  int
	tick   time.Time
	// afterLoad runs once the document has been read, outside the lock.
	afterLoad func()
}

func newMemContentRepo() *memContentRepo {
	return &memContentRepo{tick: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *memContentRepo) Load(context.Context) (*ports.StoredContent, error) {
	r.mu.Lock()
	r.loads++
	var out *ports.StoredContent
	if r.stored != nil {
		cp := *r.stored
		out = &cp
	}
	hook := r.afterLoad
	r.afterLoad = nil
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	if out == nil {
		return nil, domain.ErrContentNotFound
	}
	return out, nil
}

func (r *memContentRepo) Stamp(context.Context) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stored == nil {
		return time.Time{}, nil
	}
	return r.stored.UpdatedAt, nil
}

func (r *memContentRepo) Save(_ context.Context, version int, body []byte) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tick = r.tick.Add(time.Second)
	r.stored = &ports.StoredContent{Version: version, Body: append([]byte(nil), body...), UpdatedAt: r.tick}
	return r.tick, nil
}

// --- products ---

type memProductRepo struct {
	mu        sync.Mutex
	products  []*domain.Product
	nextID    domain.ID
	lists     int
	afterList func()
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{nextID: 1}
}

func (r *memProductRepo) List(context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	r.lists++
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	hook := r.afterList
	r.afterList = nil
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *memProductRepo) Stamp(context.Context) (*domain.ProductsStamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp := &domain.ProductsStamp{Count: int64(len(r.products))}
	for _, p := range r.products {
		if stamp.UpdatedAt == nil || p.UpdatedAt.After(*stamp.UpdatedAt) {
			ts := p.UpdatedAt
			stamp.UpdatedAt = &ts
		}
	}
	return stamp, nil
}

func (r *memProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := *p
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.nextID++
	r.products = append(r.products, &created)
	out := created
	return &out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.products {
		if existing.ID == p.ID {
			updated := *p
			updated.CreatedAt = existing.CreatedAt
			updated.UpdatedAt = time.Now().UTC()
			r.products[i] = &updated
			out := updated
			return &out, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *memProductRepo) Delete(_ context.Context, id domain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

var errStorage = errors.New("storage unavailable")
