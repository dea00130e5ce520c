package api

import (
	"context"
	"sync"
	"time"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
)

type pageStore struct {
	mu     sync.Mutex
	pages  map[domain.ID]*domain.Page
	nextID domain.ID
}

func newPageStore() *pageStore {
	return &pageStore{pages: make(map[domain.ID]*domain.Page), nextID: 1}
}

func (s *pageStore) FindByID(_ context.Context, id domain.ID) (*domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[id]
	if !ok {
		return nil, domain.ErrPageNotFound
	}
	out := *p
	return &out, nil
}

func (s *pageStore) ListByOwner(_ context.Context, ownerID domain.ID) ([]*domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Page
	for id := domain.ID(1); id < s.nextID; id++ {
		if p, ok := s.pages[id]; ok && p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *pageStore) Create(_ context.Context, ownerID domain.ID, title, content string) (*domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	p := &domain.Page{ID: s.nextID, Title: title, Content: content, OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}
	s.pages[p.ID] = p
	s.nextID++
	out := *p
	return &out, nil
}

func (s *pageStore) Update(_ context.Context, id domain.ID, update domain.PageUpdate) (*domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[id]
	if !ok {
		return nil, domain.ErrPageNotFound
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Content != nil {
		p.Content = *update.Content
	}
	p.UpdatedAt = p.UpdatedAt.Add(time.Microsecond)
	out := *p
	return &out, nil
}

func (s *pageStore) Delete(_ context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[id]; !ok {
		return domain.ErrPageNotFound
	}
	delete(s.pages, id)
	return nil
}

func (s *pageStore) get(id domain.ID) domain.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.pages[id]
}

type userStore struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID domain.ID
}

func newUserStore() *userStore {
	return &userStore{users: make(map[string]*domain.User), nextID: 1}
}

func (s *userStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *userStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	u := *user
	u.ID = s.nextID
	s.nextID++
	s.users[u.Email] = &u
	out := u
	return &out, nil
}

type contentStore struct {
	mu     sync.Mutex
	stored *ports.StoredContent
}

func (s *contentStore) Load(context.Context) (*ports.StoredContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stored == nil {
		return nil, domain.ErrContentNotFound
	}
	out := *s.stored
	return &out, nil
}

func (s *contentStore) Stamp(context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stored == nil {
		return time.Time{}, nil
	}
	return s.stored.UpdatedAt, nil
}

func (s *contentStore) Save(_ context.Context, version int, body []byte) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.stored = &ports.StoredContent{Version: version, Body: body, UpdatedAt: now}
	return now, nil
}
