package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spicevilla/spice-villa-api/services"
)

// GetMenu handles GET /menu - returns the categorized menu fetched from the
// external sheet feed. An unreachable feed degrades to an empty menu.
func GetMenu(c *gin.Context) {
	menuService := services.GetMenuService()
	if menuService == nil {
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"categories":       []string{},
			"menu_by_category": gin.H{},
		})
		return
	}

	menu := menuService.FetchMenu()
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"categories":       menu.Categories,
		"menu_by_category": menu.ByCategory,
	})
}

// GetCart handles GET /cart - describes the checkout form so clients know
// which fields to submit with the cart contents
func GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"checkout": gin.H{
			"action":          "/place_order",
			"method":          "POST",
			"required_fields": []string{"name", "phone"},
			"optional_fields": []string{"email", "address", "latitude", "longitude", "map_link"},
			"item_fields":     []string{"item_name[]", "quantity[]", "price[]"},
		},
	})
}
