package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spicevilla/spice-villa-api/config"
	"github.com/spicevilla/spice-villa-api/models"
	"github.com/spicevilla/spice-villa-api/services"
	"github.com/spicevilla/spice-villa-api/utils"
	"gorm.io/gorm"
)

// PlaceOrder handles POST /place_order - validates the checkout form and
// commits the order with its line items in a single transaction
func PlaceOrder(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	phone := strings.TrimSpace(c.PostForm("phone"))

	if name == "" || phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name and phone number are required",
			},
		})
		return
	}

	itemNames := c.PostFormArray("item_name[]")
	quantities := c.PostFormArray("quantity[]")
	prices := c.PostFormArray("price[]")

	// Re-price against the server-held menu where the item is known; the
	// client-submitted price is only honored for items the menu does not
	// carry. This is a deliberate hardening over trusting the form.
	var menu *services.Menu
	if menuService := services.GetMenuService(); menuService != nil {
		menu = menuService.FetchMenu()
	}

	items := make([]models.OrderItem, 0, len(itemNames))
	for i, itemName := range itemNames {
		quantity := 1
		if i < len(quantities) {
			quantity = utils.ParseQuantity(quantities[i])
		}
		price := 0.0
		if i < len(prices) {
			price = utils.ParsePrice(prices[i])
		}
		if menu != nil {
			if menuPrice, ok := menu.LookupPrice(itemName); ok {
				price = menuPrice
			}
		}
		items = append(items, models.OrderItem{
			ItemName: itemName,
			Quantity: quantity,
			Price:    price,
		})
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to generate delivery confirmation code",
			},
		})
		return
	}

	order := models.Order{
		CustomerName: name,
		Email:        strings.TrimSpace(c.PostForm("email")),
		Phone:        phone,
		Address:      strings.TrimSpace(c.PostForm("address")),
		Status:       models.StatusPending,
		Latitude:     utils.ParseOptionalFloat(c.PostForm("latitude")),
		Longitude:    utils.ParseOptionalFloat(c.PostForm("longitude")),
		OTP:          otp,
	}
	if mapLink := strings.TrimSpace(c.PostForm("map_link")); mapLink != "" {
		order.MapLink = &mapLink
	}

	// One transaction for the whole checkout: order row, derived order
	// number and line items commit together or not at all
	db := config.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		order.OrderNumber = utils.GenerateOrderNumber(order.CreatedAt, order.ID)
		if err := tx.Model(&order).Update("order_number", order.OrderNumber).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Checkout transaction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to place order",
			},
		})
		return
	}

	order.Items = items
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed! Confirmation code for delivery: " + order.OTP,
		"data":    orderJSON(&order),
	})
}

// MyOrders handles GET|POST /myorders - looks up a customer's orders by
// phone or email, phone taking priority, newest first
func MyOrders(c *gin.Context) {
	phone := strings.TrimSpace(formOrQuery(c, "phone"))
	email := strings.TrimSpace(formOrQuery(c, "email"))

	orders := []models.Order{}
	db := config.GetDB()

	query := db.Preload("Items").Preload("DeliveryPerson").Order("created_at DESC")
	switch {
	case phone != "":
		query = query.Where("phone = ?", phone)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		// Neither identifier given: an empty result, never all orders
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"orders":  []gin.H{},
		})
		return
	}

	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to look up orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  ordersJSON(orders),
	})
}

// GetOrderStatus handles GET /api/order_status/:order_id - reports a single
// order's status by its human-facing order number
func GetOrderStatus(c *gin.Context) {
	orderNumber := c.Param("order_id")

	db := config.GetDB()
	var order models.Order
	if err := db.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order": gin.H{
			"order_id":    order.OrderNumber,
			"status":      order.Status,
			"otp":         order.OTP,
			"total_price": order.TotalPrice(),
			"items":       order.Items,
		},
	})
}

// formOrQuery reads a value from the POST form, falling back to the query
// string so the lookup works for both methods
func formOrQuery(c *gin.Context, key string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return c.Query(key)
}
