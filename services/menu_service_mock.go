package services

import "sync"

// MockMenuService is a mock implementation of MenuService for testing
type MockMenuService struct {
	menu       *Menu
	fetchCount int
	mu         sync.RWMutex
}

// NewMockMenuService creates a mock menu service serving the given menu.
// A nil menu simulates the degraded state of an unreachable feed.
func NewMockMenuService(menu *Menu) *MockMenuService {
	return &MockMenuService{menu: menu}
}

// SetAsMockForTesting sets this mock as the global menu service instance for testing
func (m *MockMenuService) SetAsMockForTesting() {
	SetMenuService(m)
}

// FetchMenu returns the configured menu, or an empty menu when none is set
func (m *MockMenuService) FetchMenu() *Menu {
	m.mu.Lock()
	m.fetchCount++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.menu == nil {
		return &Menu{ByCategory: map[string][]MenuItem{}}
	}
	return m.menu
}

// FetchCount reports how many times FetchMenu was called
func (m *MockMenuService) FetchCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fetchCount
}
