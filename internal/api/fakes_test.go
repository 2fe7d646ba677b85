package api

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"asset_inventory/internal/domain"
	"asset_inventory/internal/store"
)

// memUsers is an in-memory store.Users.
type memUsers struct {
	mu      sync.Mutex
	order   []string
	byID    map[string]domain.User
	err     error // returned by every call when set
	staleID string
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]domain.User{}}
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	_ = u.BeforeCreate(nil)
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	m.byID[u.ID] = *u
	m.order = append(m.order, u.ID)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.User{}, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.User{}, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (m *memUsers) List(_ context.Context, p store.Page) ([]domain.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, 0, m.err
	}
	all := make([]domain.User, 0, len(m.order))
	for _, id := range m.order {
		u := m.byID[id]
		u.Password = ""
		all = append(all, u)
	}
	return pageOf(all, p), int64(len(all)), nil
}

func (m *memUsers) Update(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cur, ok := m.byID[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	if u.ID == m.staleID || cur.Version != u.Version {
		return store.ErrStale
	}
	for id, other := range m.byID {
		if id != u.ID && other.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	u.Version++
	u.UpdatedAt = time.Now()
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.byID, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return nil
}

// memAssets is an in-memory store.Assets.
type memAssets struct {
	mu      sync.Mutex
	order   []string
	byID    map[string]domain.Asset
	err     error
	staleID string
}

func newMemAssets() *memAssets {
	return &memAssets{byID: map[string]domain.Asset{}}
}

func (m *memAssets) Create(_ context.Context, a *domain.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	_ = a.BeforeCreate(nil)
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	m.byID[a.ID] = *a
	m.order = append(m.order, a.ID)
	return nil
}

func (m *memAssets) GetByID(_ context.Context, id string) (domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.Asset{}, m.err
	}
	a, ok := m.byID[id]
	if !ok {
		return domain.Asset{}, store.ErrNotFound
	}
	return a, nil
}

func (m *memAssets) List(_ context.Context, f store.AssetFilter) ([]domain.Asset, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, 0, m.err
	}
	matched := []domain.Asset{}
	for _, id := range m.order {
		a := m.byID[id]
		if containsFold(a.Description, f.Description) && containsFold(a.Category, f.Category) {
			matched = append(matched, a)
		}
	}
	return pageOf(matched, f.Page), int64(len(matched)), nil
}

func (m *memAssets) Update(_ context.Context, a *domain.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cur, ok := m.byID[a.ID]
	if !ok {
		return store.ErrNotFound
	}
	if a.ID == m.staleID || cur.Version != a.Version {
		return store.ErrStale
	}
	a.Version++
	a.UpdatedAt = time.Now()
	m.byID[a.ID] = *a
	return nil
}

func (m *memAssets) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.byID, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func pageOf[T any](all []T, p store.Page) []T {
	if p.Offset >= len(all) {
		return []T{}
	}
	end := min(p.Offset+p.Limit, len(all))
	return all[p.Offset:end]
}

// memCache is an in-memory utils.Cache.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gens map[string]int64
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, gens: map[string]int64{}}
}

func (m *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (m *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b
	return nil
}

func (m *memCache) Generation(_ context.Context, namespace string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gens[namespace], nil
}

func (m *memCache) Invalidate(_ context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gens[namespace]++
	return nil
}
