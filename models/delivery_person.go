package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DeliveryPerson represents a member of the delivery staff who can log in
// and confirm handoffs with an order's confirmation code
type DeliveryPerson struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:200" json:"name"`
	Phone        string    `gorm:"uniqueIndex;not null;size:40" json:"phone"`
	Username     string    `gorm:"uniqueIndex;not null;size:100" json:"username"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	Orders       []Order   `gorm:"foreignKey:DeliveryPersonID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the DeliveryPerson model
func (DeliveryPerson) TableName() string {
	return "delivery_persons"
}

// SetPassword hashes the given plaintext password and stores the hash
func (d *DeliveryPerson) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	d.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (d *DeliveryPerson) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)) == nil
}

// DeriveUsername builds a login username from a display name
// when the admin leaves the username field blank
func DeriveUsername(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}
