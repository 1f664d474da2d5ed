package items

import (
	"time"

	"stockledger/internal/ledger"
	"stockledger/pkg/models"
)

type createItemRequest struct {
	Type            string `json:"type" binding:"required"`
	Code            string `json:"code" binding:"required"`
	Name            string `json:"name" binding:"required"`
	DrawingNumber   string `json:"drawingNumber"`
	Spec            string `json:"spec"`
	Remarks         string `json:"remarks"`
	InitialQuantity int    `json:"initialQuantity"`
}

func (r *createItemRequest) toFields() ledger.ItemFields {
	return ledger.ItemFields{
		Type:          models.ItemType(r.Type),
		Code:          r.Code,
		Name:          r.Name,
		DrawingNumber: r.DrawingNumber,
		Spec:          r.Spec,
		Remarks:       r.Remarks,
	}
}

// updateItemRequest commits an item edit; the secret is re-entered with it.
type updateItemRequest struct {
	Secret        string  `json:"secret" binding:"required"`
	Code          *string `json:"code"`
	Name          *string `json:"name"`
	DrawingNumber *string `json:"drawingNumber"`
	Spec          *string `json:"spec"`
	Remarks       *string `json:"remarks"`
}

func (r *updateItemRequest) toUpdate() ledger.ItemUpdate {
	return ledger.ItemUpdate{
		Code:          r.Code,
		Name:          r.Name,
		DrawingNumber: r.DrawingNumber,
		Spec:          r.Spec,
		Remarks:       r.Remarks,
	}
}

type secretRequest struct {
	Secret string `json:"secret" binding:"required"`
}

type movementRequest struct {
	Type         string     `json:"type" binding:"required"`
	Quantity     int        `json:"quantity"`
	Date         *time.Time `json:"date"`
	Remarks      string     `json:"remarks"`
	ModelName    string     `json:"modelName"`
	UserID       string     `json:"userId"`
	SerialNumber string     `json:"serialNumber"`
	CustomerName string     `json:"customerName"`
	Address      string     `json:"address"`
	PhoneNumber  string     `json:"phoneNumber"`
}

func (r *movementRequest) toInput() ledger.MovementInput {
	input := ledger.MovementInput{
		Type:         models.MovementType(r.Type),
		Quantity:     r.Quantity,
		Remarks:      r.Remarks,
		ModelName:    r.ModelName,
		UserID:       r.UserID,
		SerialNumber: r.SerialNumber,
		CustomerName: r.CustomerName,
		Address:      r.Address,
		PhoneNumber:  r.PhoneNumber,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

type updateTransactionRequest struct {
	Secret       string     `json:"secret" binding:"required"`
	Quantity     *int       `json:"quantity"`
	Date         *time.Time `json:"date"`
	Remarks      *string    `json:"remarks"`
	ModelName    *string    `json:"modelName"`
	UserID       *string    `json:"userId"`
	SerialNumber *string    `json:"serialNumber"`
	CustomerName *string    `json:"customerName"`
	Address      *string    `json:"address"`
	PhoneNumber  *string    `json:"phoneNumber"`
}

func (r *updateTransactionRequest) toUpdate() ledger.TransactionUpdate {
	return ledger.TransactionUpdate{
		Quantity:     r.Quantity,
		Date:         r.Date,
		Remarks:      r.Remarks,
		ModelName:    r.ModelName,
		UserID:       r.UserID,
		SerialNumber: r.SerialNumber,
		CustomerName: r.CustomerName,
		Address:      r.Address,
		PhoneNumber:  r.PhoneNumber,
	}
}
