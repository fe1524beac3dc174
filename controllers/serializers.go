package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/spicevilla/spice-villa-api/models"
)

// orderJSON builds the response shape for an order, with the total always
// computed from the line items
func orderJSON(order *models.Order) gin.H {
	out := gin.H{
		"id":            order.ID,
		"order_id":      order.OrderNumber,
		"customer_name": order.CustomerName,
		"email":         order.Email,
		"phone":         order.Phone,
		"address":       order.Address,
		"status":        order.Status,
		"otp":           order.OTP,
		"items":         order.Items,
		"total_price":   order.TotalPrice(),
		"created_at":    order.CreatedAt,
	}
	if order.Latitude != nil {
		out["latitude"] = *order.Latitude
	}
	if order.Longitude != nil {
		out["longitude"] = *order.Longitude
	}
	if order.MapLink != nil {
		out["map_link"] = *order.MapLink
	}
	if order.DeliveryPerson != nil {
		out["delivery_person"] = gin.H{
			"id":   order.DeliveryPerson.ID,
			"name": order.DeliveryPerson.Name,
		}
	} else if order.DeliveryPersonID != nil {
		out["delivery_person"] = gin.H{"id": *order.DeliveryPersonID}
	}
	return out
}

// ordersJSON serializes a slice of orders
func ordersJSON(orders []models.Order) []gin.H {
	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderJSON(&orders[i]))
	}
	return out
}
