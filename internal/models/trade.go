package models

import (
	"time"
)

// TradeStatus is the lifecycle state of a trade offer
type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
)

var tradeStatuses = []TradeStatus{TradePending, TradeAccepted, TradeRejected, TradeCancelled}

// Valid reports whether s is a known status
func (s TradeStatus) Valid() bool {
	for _, known := range tradeStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// TradeOffer represents a proposal to swap one skin for another
type TradeOffer struct {
	ID              string      `json:"id"`
	FromUser        string      `json:"from_user"`
	ToUser          string      `json:"to_user"`
	OfferedSkinID   string      `json:"offered_skin_id"`
	RequestedSkinID string      `json:"requested_skin_id"`
	Message         string      `json:"message"`
	Status          TradeStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	// Joined from the skins table, read-only
	OfferedSkinName   string `json:"offered_skin_name"`
	OfferedWeapon     string `json:"offered_weapon"`
	OfferedImage      string `json:"offered_image"`
	OfferedPrice      int64  `json:"offered_price"`
	RequestedSkinName string `json:"requested_skin_name"`
	RequestedWeapon   string `json:"requested_weapon"`
	RequestedImage    string `json:"requested_image"`
	RequestedPrice    int64  `json:"requested_price"`
}

// TradeCreate is the request body for creating a trade offer
type TradeCreate struct {
	FromUser        string `json:"from_user" validate:"required"`
	ToUser          string `json:"to_user" validate:"required"`
	OfferedSkinID   string `json:"offered_skin_id" validate:"required"`
	RequestedSkinID string `json:"requested_skin_id" validate:"required"`
	Message         string `json:"message"`
}

// TradeStatusUpdate is the request body for moving a trade offer to a new status
type TradeStatusUpdate struct {
	ID     string      `json:"id" validate:"required"`
	Status TradeStatus `json:"status" validate:"required,tradestatus"`
}
