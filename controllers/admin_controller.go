package controllers

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spicevilla/spice-villa-api/config"
	"github.com/spicevilla/spice-villa-api/middleware"
	"github.com/spicevilla/spice-villa-api/models"
	"golang.org/x/crypto/bcrypt"
)

// DashboardPageSize is the fixed number of orders per dashboard page
const DashboardPageSize = 10

// AdminLogin handles POST /admin/login - verifies the configured admin
// credentials and issues an admin session token
func AdminLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	cfg := config.GetConfig()
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AdminUsername)) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(password)) == nil

	if !usernameOK || !passwordOK {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid login",
			},
		})
		return
	}

	token, err := middleware.IssueSessionToken(middleware.RoleAdmin, cfg.AdminUsername, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to create session",
			},
		})
		return
	}

	middleware.SetSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

// AdminLogout handles GET /admin/logout - clears the session cookie
func AdminLogout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// AdminDashboard handles GET /admin/dashboard - filtered, paginated order
// list plus the delivery-person roster
func AdminDashboard(c *gin.Context) {
	db := config.GetDB()

	search := strings.TrimSpace(c.Query("query"))
	statusFilter := strings.TrimSpace(c.Query("status"))
	startDate := strings.TrimSpace(c.Query("start_date"))
	endDate := strings.TrimSpace(c.Query("end_date"))

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	q := db.Model(&models.Order{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"order_number LIKE ? OR customer_name LIKE ? OR phone LIKE ? OR email LIKE ?",
			like, like, like, like,
		)
	}
	if statusFilter != "" {
		q = q.Where("status = ?", statusFilter)
	}
	if startDate != "" {
		if from, err := time.Parse("2006-01-02", startDate); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if endDate != "" {
		if to, err := time.Parse("2006-01-02", endDate); err == nil {
			// Inclusive through the end of the day
			q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count orders",
			},
		})
		return
	}

	var orders []models.Order
	err = q.Preload("Items").Preload("DeliveryPerson").
		Order("created_at DESC").
		Limit(DashboardPageSize).
		Offset((page - 1) * DashboardPageSize).
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	var deliveryPersons []models.DeliveryPerson
	if err := db.Order("name").Find(&deliveryPersons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load delivery persons",
			},
		})
		return
	}

	totalPages := int((total + DashboardPageSize - 1) / DashboardPageSize)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"orders":           ordersJSON(orders),
			"delivery_persons": deliveryPersons,
			"pagination": gin.H{
				"page":        page,
				"per_page":    DashboardPageSize,
				"total":       total,
				"total_pages": totalPages,
			},
		},
	})
}

// orderIDParam parses the :id route segment as a numeric primary key.
// Anything non-numeric is rejected before it can reach gorm as an
// inline condition.
func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order id",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// AssignDelivery handles POST /admin/assign_delivery/:id - assigns a
// delivery person and moves the order to Accepted in the same write
func AssignDelivery(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	dpParam := c.PostForm("delivery_person_id")
	if dpParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Select a delivery person",
			},
		})
		return
	}

	dpID, err := strconv.ParseUint(dpParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid delivery person id",
			},
		})
		return
	}

	var dp models.DeliveryPerson
	if err := db.First(&dp, dpID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DELIVERY_PERSON_NOT_FOUND",
				"message": "Delivery person not found",
			},
		})
		return
	}

	// Reassignment of an already Accepted order is allowed; anything else
	// must be a legal move to Accepted
	if order.Status != models.StatusAccepted && !models.CanTransition(order.Status, models.StatusAccepted) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Order in status '" + order.Status + "' cannot be assigned",
			},
		})
		return
	}

	// Both fields in one UPDATE so assignment and status never diverge
	updates := map[string]interface{}{
		"delivery_person_id": dp.ID,
		"status":             models.StatusAccepted,
	}
	if err := db.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to assign delivery person",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order " + order.OrderNumber + " assigned to " + dp.Name,
	})
}

// UpdateStatus handles POST /admin/update_status/:id - moves an order
// through the closed status enumeration
func UpdateStatus(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	newStatus := strings.TrimSpace(c.PostForm("status"))
	if !models.IsValidStatus(newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown status '" + newStatus + "'",
			},
		})
		return
	}

	if !models.CanTransition(order.Status, newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Cannot move order from '" + order.Status + "' to '" + newStatus + "'",
			},
		})
		return
	}

	if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order " + order.OrderNumber + " status updated",
	})
}

// AddDeliveryPerson handles POST /admin/add_delivery_person - registers a
// new delivery person, deriving the username from the name when blank
func AddDeliveryPerson(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	phone := strings.TrimSpace(c.PostForm("phone"))
	username := strings.TrimSpace(c.PostForm("username"))
	password := strings.TrimSpace(c.PostForm("password"))

	if name == "" || phone == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name, phone, and password are required",
			},
		})
		return
	}

	if username == "" {
		username = models.DeriveUsername(name)
	}

	db := config.GetDB()
	var count int64
	if err := db.Model(&models.DeliveryPerson{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check phone uniqueness",
			},
		})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_PHONE",
				"message": "Phone number already exists",
			},
		})
		return
	}

	if err := db.Model(&models.DeliveryPerson{}).Where("username = ?", username).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check username uniqueness",
			},
		})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_USERNAME",
				"message": "Username already taken",
			},
		})
		return
	}

	dp := models.DeliveryPerson{
		Name:     name,
		Phone:    phone,
		Username: username,
	}
	if err := dp.SetPassword(password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to hash password",
			},
		})
		return
	}

	if err := db.Create(&dp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create delivery person",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Delivery person " + dp.Name + " added! Username: " + dp.Username,
		"data":    dp,
	})
}

// ListDeliveryPersons handles GET /admin/delivery_persons - the roster,
// ordered by name
func ListDeliveryPersons(c *gin.Context) {
	db := config.GetDB()

	var deliveryPersons []models.DeliveryPerson
	if err := db.Order("name").Find(&deliveryPersons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load delivery persons",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    deliveryPersons,
	})
}
