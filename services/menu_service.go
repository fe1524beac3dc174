package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
)

// DefaultCategory is used when a menu row carries no category
const DefaultCategory = "Others"

// MenuItem represents a single entry on the restaurant menu
type MenuItem struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Menu is the categorized menu: category names in first-seen order plus the
// items grouped under each category
type Menu struct {
	Categories []string              `json:"categories"`
	ByCategory map[string][]MenuItem `json:"menu_by_category"`
}

// IsEmpty reports whether the menu has no items at all
func (m *Menu) IsEmpty() bool {
	return len(m.Categories) == 0
}

// LookupPrice returns the menu price for an item name, matching on the
// display name. Used to re-price checkout lines against the server-held
// menu instead of trusting client-submitted prices.
func (m *Menu) LookupPrice(name string) (float64, bool) {
	for _, category := range m.Categories {
		for _, item := range m.ByCategory[category] {
			if item.Name == name {
				return item.Price, true
			}
		}
	}
	return 0, false
}

// MenuService fetches the restaurant menu from the external tabular feed
type MenuService interface {
	// FetchMenu returns the categorized menu. An unreachable or malformed
	// feed yields an empty menu, never an error: callers treat an empty
	// menu as the designed degraded state.
	FetchMenu() *Menu
}

// HTTPMenuService implements MenuService against an opensheet-style JSON
// feed: an array of row objects keyed by column header
type HTTPMenuService struct {
	sheetURL   string
	httpClient *http.Client
}

var menuServiceInstance MenuService

// InitMenuService initializes the menu service against the configured feed URL
func InitMenuService(sheetURL string) MenuService {
	menuServiceInstance = NewHTTPMenuService(sheetURL)
	return menuServiceInstance
}

// GetMenuService returns the initialized menu service instance
func GetMenuService() MenuService {
	return menuServiceInstance
}

// SetMenuService sets the menu service instance (primarily for testing)
func SetMenuService(service MenuService) {
	menuServiceInstance = service
}

// NewHTTPMenuService creates a menu service fetching from the given URL
func NewHTTPMenuService(sheetURL string) *HTTPMenuService {
	return &HTTPMenuService{
		sheetURL: sheetURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchMenu fetches and categorizes the menu. No caching and no retry:
// every call hits the feed.
func (s *HTTPMenuService) FetchMenu() *Menu {
	rows, err := s.fetchRows()
	if err != nil {
		// Distinct from "the feed is legitimately empty"
		log.Printf("Menu source unavailable, serving empty menu: %v", err)
		return &Menu{ByCategory: map[string][]MenuItem{}}
	}
	return buildMenu(rows)
}

func (s *HTTPMenuService) fetchRows() ([]map[string]interface{}, error) {
	if s.sheetURL == "" {
		return nil, fmt.Errorf("menu sheet URL is not configured")
	}

	resp, err := s.httpClient.Get(s.sheetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("menu sheet returned status %d", resp.StatusCode)
	}

	var rows []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode menu sheet: %w", err)
	}
	return rows, nil
}

// buildMenu groups rows by category, insertion-ordered first-seen-wins.
// Unparsable prices become 0 and a missing category falls into DefaultCategory.
func buildMenu(rows []map[string]interface{}) *Menu {
	menu := &Menu{ByCategory: map[string][]MenuItem{}}
	for idx, row := range rows {
		category := cellString(row, "category")
		if category == "" {
			category = DefaultCategory
		}
		if _, seen := menu.ByCategory[category]; !seen {
			menu.Categories = append(menu.Categories, category)
			menu.ByCategory[category] = []MenuItem{}
		}

		menu.ByCategory[category] = append(menu.ByCategory[category], MenuItem{
			ID:    idx + 1,
			Name:  cellString(row, "name"),
			Price: cellPrice(row, "price"),
			Image: cellString(row, "image"),
		})
	}
	return menu
}

// cellString reads a sheet cell as a string, tolerating missing keys
func cellString(row map[string]interface{}, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

// cellPrice reads a sheet cell as a price. Sheet feeds usually serve every
// cell as a string, but numbers are accepted too; anything unparsable or
// negative becomes 0.
func cellPrice(row map[string]interface{}, key string) float64 {
	switch v := row[key].(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return v
	case string:
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			return 0
		}
		return price
	default:
		return 0
	}
}
