package models

import (
	"time"
)

// Order represents a customer order in the system
type Order struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	OrderNumber      string          `gorm:"uniqueIndex;size:64" json:"order_number"` // human-facing token, e.g. ORD-20260830121314-42
	CustomerName     string          `gorm:"not null;size:200" json:"customer_name"`
	Email            string          `gorm:"size:200" json:"email"`
	Phone            string          `gorm:"not null;index;size:40" json:"phone"`
	Address          string          `gorm:"size:400" json:"address"`
	Status           string          `gorm:"not null;default:'Pending';size:50" json:"status"`
	Latitude         *float64        `json:"latitude,omitempty"`
	Longitude        *float64        `json:"longitude,omitempty"`
	MapLink          *string         `gorm:"size:500" json:"map_link,omitempty"`
	OTP              string          `gorm:"size:6" json:"-"` // delivery confirmation code, never listed publicly
	DeliveryPersonID *uint           `gorm:"index" json:"delivery_person_id,omitempty"`
	DeliveryPerson   *DeliveryPerson `gorm:"foreignKey:DeliveryPersonID" json:"delivery_person,omitempty"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// TotalPrice computes the order total from its line items.
// The total is never stored; it is always derived.
func (o *Order) TotalPrice() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
