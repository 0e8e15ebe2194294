package models

import (
	"strings"
	"time"
)

type Customer struct {
	ID               string    `json:"id" gorm:"primaryKey;size:20"`
	Name             string    `json:"name" gorm:"size:100;not null"`
	Email            string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Phone            string    `json:"phone" gorm:"size:20"`
	Address          string    `json:"address" gorm:"type:text"`
	RegistrationDate time.Time `json:"registration_date" gorm:"autoCreateTime"`
	LastLogin        time.Time `json:"last_login" gorm:"autoUpdateTime"`
	Status           string    `json:"status" gorm:"size:20;not null;index"` // active, inactive, banned
	Verified         bool      `json:"verified" gorm:"not null"`
	LoyaltyTier      string    `json:"loyalty_tier" gorm:"size:20"`
	Avatar           *string   `json:"avatar" gorm:"size:200"`
}

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
	CustomerBanned   CustomerStatus = "banned"
)

const DefaultLoyaltyTier = "Bronze"

// CustomerRequest is the writable surface of a customer.
type CustomerRequest struct {
	ID          string `json:"id" binding:"omitempty,max=20"`
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email,max=254"`
	Phone       string `json:"phone" binding:"max=20"`
	Address     string `json:"address"`
	Status      string `json:"status" binding:"omitempty,oneof=active inactive banned"`
	Verified    bool   `json:"verified"`
	LoyaltyTier string `json:"loyalty_tier" binding:"max=20"`
	Avatar      string `json:"avatar" binding:"omitempty,url,max=200"`
}

// NewCustomerRequest seeds a request with the current state so a partial
// payload can be decoded over it.
func NewCustomerRequest(c *Customer) CustomerRequest {
	req := CustomerRequest{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		Status:      c.Status,
		Verified:    c.Verified,
		LoyaltyTier: c.LoyaltyTier,
	}
	if c.Avatar != nil {
		req.Avatar = *c.Avatar
	}
	return req
}

// Apply copies the request onto c. The primary key is never changed here.
func (r *CustomerRequest) Apply(c *Customer) {
	c.Name = strings.TrimSpace(r.Name)
	c.Email = strings.ToLower(strings.TrimSpace(r.Email))
	c.Phone = r.Phone
	c.Address = r.Address
	c.Status = r.Status
	if c.Status == "" {
		c.Status = string(CustomerActive)
	}
	c.Verified = r.Verified
	c.LoyaltyTier = r.LoyaltyTier
	if c.LoyaltyTier == "" {
		c.LoyaltyTier = DefaultLoyaltyTier
	}
	c.Avatar = optionalString(r.Avatar)
}

func optionalString(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
