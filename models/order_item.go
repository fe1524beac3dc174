package models

// OrderItem represents a single line item belonging to an order
type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	OrderID  uint    `gorm:"not null;index" json:"order_id"`
	ItemName string  `gorm:"not null;size:200" json:"item_name"`
	Quantity int     `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	Price    float64 `gorm:"not null;default:0;check:price >= 0" json:"price"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns price times quantity for this line
func (i *OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
