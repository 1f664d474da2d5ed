// Package ledger owns the in-memory item collection and the movement rules
// applied to it. Every mutation is all-or-nothing; stock is derived from the
// transaction history on every read and never stored.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"stockledger/internal/serial"
	custom_error "stockledger/pkg/errors"
	"stockledger/pkg/models"
)

// InitialStockRemark marks the synthetic inbound movement seeded when an item
// is registered with an opening quantity.
const InitialStockRemark = "initial stock on registration"

var (
	ErrItemNotFound        = errors.New("item not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Store holds the authoritative in-memory collection. All mutations go
// through it synchronously, so within a process there is a single writer.
type Store struct {
	mu    sync.RWMutex
	items []models.Item
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// DeriveStock folds the transaction history into the net quantity on hand.
// Pure; the order of transactions does not affect the total.
func DeriveStock(item models.Item) int {
	total := 0
	for _, tx := range item.Transactions {
		switch tx.Type {
		case models.MovementInbound:
			total += tx.Quantity
		case models.MovementOutbound:
			total -= tx.Quantity
		}
	}
	return total
}

// ItemFields carries the writable item fields for registration.
type ItemFields struct {
	Type          models.ItemType
	Code          string
	Name          string
	DrawingNumber string
	Spec          string
	Remarks       string
}

// ItemUpdate carries a partial field replacement; nil leaves a field as-is.
type ItemUpdate struct {
	Code          *string
	Name          *string
	DrawingNumber *string
	Spec          *string
	Remarks       *string
}

// MovementInput is one submitted movement. For product items a non-empty
// SerialNumber may denote a range; it is expanded before anything persists.
type MovementInput struct {
	Type         models.MovementType
	Quantity     int
	Date         time.Time
	Remarks      string
	ModelName    string
	UserID       string
	SerialNumber string
	CustomerName string
	Address      string
	PhoneNumber  string
}

// CreateItem registers a new item. When initialQuantity is positive a single
// synthetic inbound movement dated now seeds the opening stock.
func (s *Store) CreateItem(fields ItemFields, initialQuantity int) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := strings.TrimSpace(fields.Code)
	name := strings.TrimSpace(fields.Name)

	if code == "" || name == "" {
		return models.Item{}, custom_error.NewValidationError("item code and name are required")
	}
	if !fields.Type.IsValid() {
		return models.Item{}, custom_error.NewValidationError(fmt.Sprintf("unknown item type %q", fields.Type))
	}
	if s.codeTaken(code, uuid.Nil) {
		return models.Item{}, custom_error.NewValidationError(fmt.Sprintf("item code %q is already registered", code))
	}
	if initialQuantity < 0 {
		return models.Item{}, custom_error.NewValidationError("initial quantity must not be negative")
	}

	item := models.Item{
		ID:               uuid.New(),
		Type:             fields.Type,
		Code:             code,
		Name:             name,
		DrawingNumber:    fields.DrawingNumber,
		Spec:             fields.Spec,
		Remarks:          fields.Remarks,
		RegistrationDate: s.now(),
		Transactions:     []models.Transaction{},
	}

	if initialQuantity > 0 {
		item.Transactions = append(item.Transactions, models.Transaction{
			ID:       uuid.New(),
			Type:     models.MovementInbound,
			Quantity: initialQuantity,
			Date:     s.now(),
			Remarks:  InitialStockRemark,
		})
	}

	s.items = append(s.items, item)
	return item.Clone(), nil
}

// UpdateItem shallow-merges the given fields into the item. A changed code is
// re-validated against every other item's code, case-insensitively.
func (s *Store) UpdateItem(id uuid.UUID, update ItemUpdate) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findItem(id)
	if item == nil {
		return models.Item{}, ErrItemNotFound
	}

	// Merge into a working copy so a rejected field leaves the stored item
	// untouched, whatever the field order.
	updated := *item
	if update.Code != nil {
		code := strings.TrimSpace(*update.Code)
		if code == "" {
			return models.Item{}, custom_error.NewValidationError("item code is required")
		}
		if s.codeTaken(code, id) {
			return models.Item{}, custom_error.NewValidationError(fmt.Sprintf("item code %q is already registered", code))
		}
		updated.Code = code
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return models.Item{}, custom_error.NewValidationError("item name is required")
		}
		updated.Name = name
	}
	if update.DrawingNumber != nil {
		updated.DrawingNumber = *update.DrawingNumber
	}
	if update.Spec != nil {
		updated.Spec = *update.Spec
	}
	if update.Remarks != nil {
		updated.Remarks = *update.Remarks
	}

	*item = updated
	return item.Clone(), nil
}

// DeleteItem removes the item together with its whole transaction history.
func (s *Store) DeleteItem(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// AddMovement validates and persists one submitted movement. Product
// submissions carrying a serial input are expanded first and persist one
// transaction of quantity one per expanded serial; everything else persists a
// single transaction. Either the whole submission applies or none of it does.
func (s *Store) AddMovement(itemID uuid.UUID, input MovementInput) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findItem(itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if !input.Type.IsValid() {
		return nil, custom_error.NewValidationError(fmt.Sprintf("unknown movement type %q", input.Type))
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	serialInput := strings.TrimSpace(input.SerialNumber)
	if item.Type == models.ItemTypeProduct && serialInput != "" {
		return s.addSerializedMovements(item, input, serialInput, date)
	}

	if input.Quantity <= 0 {
		return nil, custom_error.NewValidationError("quantity must be a positive integer")
	}
	if input.Type == models.MovementOutbound && input.Quantity > DeriveStock(*item) {
		return nil, custom_error.NewValidationError(
			fmt.Sprintf("outbound quantity %d exceeds current stock %d", input.Quantity, DeriveStock(*item)))
	}

	tx := newTransaction(input, date, serialInput, input.Quantity)
	item.Transactions = append(item.Transactions, tx)
	return []models.Transaction{tx}, nil
}

// addSerializedMovements handles the serialized product path: expand the
// input, reject the whole submission on any registry collision, then persist
// one quantity-1 transaction per serial.
func (s *Store) addSerializedMovements(item *models.Item, input MovementInput, serialInput string, date time.Time) ([]models.Transaction, error) {
	expanded, err := serial.ExpandRange(serialInput)
	if err != nil {
		return nil, err
	}

	registry := serial.Registry(s.items)
	if colliding := serial.FindDuplicates(expanded, registry); len(colliding) > 0 {
		return nil, custom_error.NewDuplicateSerialError(colliding)
	}
	if input.Type == models.MovementOutbound && len(expanded) > DeriveStock(*item) {
		return nil, custom_error.NewValidationError(
			fmt.Sprintf("outbound quantity %d exceeds current stock %d", len(expanded), DeriveStock(*item)))
	}

	txs := make([]models.Transaction, 0, len(expanded))
	for _, sn := range expanded {
		txs = append(txs, newTransaction(input, date, strings.ToUpper(sn), 1))
	}
	item.Transactions = append(item.Transactions, txs...)
	return txs, nil
}

// TransactionUpdate carries a partial field edit on one transaction.
type TransactionUpdate struct {
	Quantity     *int
	Date         *time.Time
	Remarks      *string
	ModelName    *string
	UserID       *string
	SerialNumber *string
	CustomerName *string
	Address      *string
	PhoneNumber  *string
}

// UpdateTransaction replaces the given fields on one transaction. A changed
// serial is re-checked against the registry, excluding the edited record.
func (s *Store) UpdateTransaction(itemID, txID uuid.UUID, update TransactionUpdate) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findItem(itemID)
	if item == nil {
		return models.Transaction{}, ErrItemNotFound
	}
	tx := findTransaction(item, txID)
	if tx == nil {
		return models.Transaction{}, ErrTransactionNotFound
	}

	// Merge into a working copy so a rejected field leaves the stored record
	// (and the derived stock) untouched, whatever the field order.
	updated := *tx
	if update.Quantity != nil {
		if *update.Quantity <= 0 {
			return models.Transaction{}, custom_error.NewValidationError("quantity must be a positive integer")
		}
		updated.Quantity = *update.Quantity
	}
	if update.SerialNumber != nil {
		sn := strings.ToUpper(strings.TrimSpace(*update.SerialNumber))
		if sn != "" && sn != strings.ToUpper(tx.SerialNumber) {
			registry := serial.Registry(s.items)
			delete(registry, strings.ToUpper(tx.SerialNumber))
			if serial.IsDuplicate(sn, registry) {
				return models.Transaction{}, custom_error.NewDuplicateSerialError([]string{sn})
			}
		}
		updated.SerialNumber = sn
	}
	if update.Date != nil {
		updated.Date = *update.Date
	}
	if update.Remarks != nil {
		updated.Remarks = *update.Remarks
	}
	if update.ModelName != nil {
		updated.ModelName = *update.ModelName
	}
	if update.UserID != nil {
		updated.UserID = *update.UserID
	}
	if update.CustomerName != nil {
		updated.CustomerName = *update.CustomerName
	}
	if update.Address != nil {
		updated.Address = *update.Address
	}
	if update.PhoneNumber != nil {
		updated.PhoneNumber = *update.PhoneNumber
	}

	*tx = updated
	return *tx, nil
}

// DeleteTransaction removes one movement record from its item.
func (s *Store) DeleteTransaction(itemID, txID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findItem(itemID)
	if item == nil {
		return ErrItemNotFound
	}
	for i := range item.Transactions {
		if item.Transactions[i].ID == txID {
			item.Transactions = append(item.Transactions[:i], item.Transactions[i+1:]...)
			return nil
		}
	}
	return ErrTransactionNotFound
}

// Item returns a copy of one item.
func (s *Store) Item(id uuid.UUID) (models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item := s.findItem(id)
	if item == nil {
		return models.Item{}, ErrItemNotFound
	}
	return item.Clone(), nil
}

// Items returns a deep copy of the whole collection.
func (s *Store) Items() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Item, len(s.items))
	for i := range s.items {
		items[i] = s.items[i].Clone()
	}
	return items
}

// Replace swaps the whole collection, unconditionally. Confirmation before a
// destructive import is the caller's responsibility.
func (s *Store) Replace(items []models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]models.Item, len(items))
	for i := range items {
		s.items[i] = items[i].Clone()
	}
}

// Snapshot captures the collection in the persisted exchange shape.
func (s *Store) Snapshot() models.Snapshot {
	return models.Snapshot{
		Items:     s.Items(),
		UpdatedAt: s.now(),
	}
}

// UsedSerials returns the global serial registry of the collection.
func (s *Store) UsedSerials() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return serial.Registry(s.items)
}

func (s *Store) findItem(id uuid.UUID) *models.Item {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i]
		}
	}
	return nil
}

func findTransaction(item *models.Item, txID uuid.UUID) *models.Transaction {
	for i := range item.Transactions {
		if item.Transactions[i].ID == txID {
			return &item.Transactions[i]
		}
	}
	return nil
}

func (s *Store) codeTaken(code string, exclude uuid.UUID) bool {
	key := strings.ToLower(strings.TrimSpace(code))
	for i := range s.items {
		if s.items[i].ID == exclude {
			continue
		}
		if s.items[i].CodeKey() == key {
			return true
		}
	}
	return false
}

func newTransaction(input MovementInput, date time.Time, serialNumber string, quantity int) models.Transaction {
	return models.Transaction{
		ID:           uuid.New(),
		Type:         input.Type,
		Quantity:     quantity,
		Date:         date,
		Remarks:      input.Remarks,
		ModelName:    input.ModelName,
		UserID:       input.UserID,
		SerialNumber: serialNumber,
		CustomerName: input.CustomerName,
		Address:      input.Address,
		PhoneNumber:  input.PhoneNumber,
	}
}
