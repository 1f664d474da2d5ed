package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ItemType string

const (
	ItemTypePart    ItemType = "part"
	ItemTypeProduct ItemType = "product"
)

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypePart, ItemTypeProduct:
		return true
	default:
		return false
	}
}

func (t ItemType) String() string {
	return string(t)
}

// Item is a tracked part or product. Stock is never stored on the item;
// it is always derived from the transaction history.
type Item struct {
	ID               uuid.UUID     `json:"id"`
	Type             ItemType      `json:"type"`
	Code             string        `json:"code"`
	Name             string        `json:"name"`
	DrawingNumber    string        `json:"drawingNumber,omitempty"`
	Spec             string        `json:"spec,omitempty"`
	Remarks          string        `json:"remarks,omitempty"`
	RegistrationDate time.Time     `json:"registrationDate"`
	Transactions     []Transaction `json:"transactions"`
}

// CodeKey normalizes the item code for the case-insensitive uniqueness check.
func (i *Item) CodeKey() string {
	return strings.ToLower(strings.TrimSpace(i.Code))
}

func (i *Item) Clone() Item {
	clone := *i
	if i.Transactions != nil {
		clone.Transactions = make([]Transaction, len(i.Transactions))
		copy(clone.Transactions, i.Transactions)
	}
	return clone
}
