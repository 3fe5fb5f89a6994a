package model

import (
	"time"

	"github.com/google/uuid"
)

// CartData maps itemId -> size -> quantity, mirroring the nested cart
// map the storefront keeps on the user record.
type CartData map[string]map[string]int

// Add increments the quantity for an item/size pair.
func (c CartData) Add(itemID, size string) {
	if c[itemID] == nil {
		c[itemID] = map[string]int{}
	}
	c[itemID][size]++
}

// Set overwrites the quantity for an item/size pair. A quantity of zero
// removes the entry.
func (c CartData) Set(itemID, size string, quantity int) {
	if quantity <= 0 {
		if sizes, ok := c[itemID]; ok {
			delete(sizes, size)
			if len(sizes) == 0 {
				delete(c, itemID)
			}
		}
		return
	}
	if c[itemID] == nil {
		c[itemID] = map[string]int{}
	}
	c[itemID][size] = quantity
}

// User is a storefront account. The password hash never leaves the API.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CartData     CartData  `json:"cartData,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest is the body of POST /api/user/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/user/login and /api/user/admin.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
