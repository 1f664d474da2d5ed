package models

import (
	"time"

	"github.com/google/uuid"
)

type MovementType string

const (
	MovementInbound  MovementType = "inbound"
	MovementOutbound MovementType = "outbound"
)

func (m MovementType) IsValid() bool {
	switch m {
	case MovementInbound, MovementOutbound:
		return true
	default:
		return false
	}
}

func (m MovementType) String() string {
	return string(m)
}

// Transaction is a single inbound or outbound movement record. It belongs to
// exactly one item and is removed together with it.
type Transaction struct {
	ID           uuid.UUID    `json:"id"`
	Type         MovementType `json:"type"`
	Quantity     int          `json:"quantity"`
	Date         time.Time    `json:"date"`
	Remarks      string       `json:"remarks,omitempty"`
	ModelName    string       `json:"modelName,omitempty"`
	UserID       string       `json:"userId,omitempty"`
	SerialNumber string       `json:"serialNumber,omitempty"`
	CustomerName string       `json:"customerName,omitempty"`
	Address      string       `json:"address,omitempty"`
	PhoneNumber  string       `json:"phoneNumber,omitempty"`
}
