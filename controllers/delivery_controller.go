package controllers

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spicevilla/spice-villa-api/config"
	"github.com/spicevilla/spice-villa-api/middleware"
	"github.com/spicevilla/spice-villa-api/models"
)

// DeliveryLogin handles POST /delivery/login - phone + password checked
// against the stored bcrypt hash
func DeliveryLogin(c *gin.Context) {
	phone := strings.TrimSpace(c.PostForm("phone"))
	password := c.PostForm("password")

	db := config.GetDB()
	var dp models.DeliveryPerson
	err := db.Where("phone = ?", phone).First(&dp).Error
	if err != nil || !dp.CheckPassword(password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid login",
			},
		})
		return
	}

	token, err := middleware.IssueSessionToken(
		middleware.RoleDelivery,
		strconv.FormatUint(uint64(dp.ID), 10),
		dp.Name,
	)
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
		"data": gin.H{
			"id":   dp.ID,
			"name": dp.Name,
		},
	})
}

// DeliveryLogout handles GET /delivery/logout - clears the session cookie
func DeliveryLogout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// DeliveryDashboard handles GET /delivery/dashboard - the caller's open
// orders as a FIFO service queue, oldest first
func DeliveryDashboard(c *gin.Context) {
	dpID, ok := sessionDeliveryPersonID(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var orders []models.Order
	err := db.Preload("Items").
		Where("delivery_person_id = ? AND status NOT IN ?", dpID,
			[]string{models.StatusDelivered, models.StatusCancelled}).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load assigned orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  ordersJSON(orders),
	})
}

// ConfirmDelivery handles POST /delivery/dashboard - marks an assigned
// order Delivered when the supplied confirmation code matches
func ConfirmDelivery(c *gin.Context) {
	dpID, ok := sessionDeliveryPersonID(c)
	if !ok {
		return
	}

	enteredOTP := strings.TrimSpace(c.PostForm("otp"))

	// The id must be a plain integer; a raw string here would reach gorm
	// as an inline SQL condition
	orderID, err := strconv.ParseUint(strings.TrimSpace(c.PostForm("order_id")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order id",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, uint(orderID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	// Couriers can only confirm their own assignments
	if order.DeliveryPersonID == nil || *order.DeliveryPersonID != dpID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Order is not assigned to you",
			},
		})
		return
	}

	if !models.CanTransition(order.Status, models.StatusDelivered) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Order in status '" + order.Status + "' cannot be delivered",
			},
		})
		return
	}

	if subtle.ConstantTimeCompare([]byte(order.OTP), []byte(enteredOTP)) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_OTP",
				"message": "Invalid confirmation code",
			},
		})
		return
	}

	if err := db.Model(&order).Update("status", models.StatusDelivered).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to mark order delivered",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order " + order.OrderNumber + " marked as Delivered",
	})
}

// sessionDeliveryPersonID reads the caller's delivery person id from the
// session, writing the error response itself when the session is unusable
func sessionDeliveryPersonID(c *gin.Context) (uint, bool) {
	subject, err := middleware.GetSessionSubject(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract session information",
			},
		})
		return 0, false
	}

	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_SESSION",
				"message": "Session subject is not a delivery person id",
			},
		})
		return 0, false
	}

	return uint(id), true
}
