package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custom_error "stockledger/pkg/errors"
	"stockledger/pkg/models"
)

func newTestStore() *Store {
	s := NewStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	return s
}

func TestDeriveStockIsOrderIndependent(t *testing.T) {
	forward := models.Item{Transactions: []models.Transaction{
		{Type: models.MovementInbound, Quantity: 10},
		{Type: models.MovementOutbound, Quantity: 3},
		{Type: models.MovementInbound, Quantity: 5},
	}}
	reversed := models.Item{Transactions: []models.Transaction{
		{Type: models.MovementInbound, Quantity: 5},
		{Type: models.MovementOutbound, Quantity: 3},
		{Type: models.MovementInbound, Quantity: 10},
	}}

	assert.Equal(t, 12, DeriveStock(forward))
	assert.Equal(t, DeriveStock(forward), DeriveStock(reversed))
}

func TestCreateItemSeedsInitialStock(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET"}, 10)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, item.ID)
	require.Len(t, item.Transactions, 1)
	assert.Equal(t, models.MovementInbound, item.Transactions[0].Type)
	assert.Equal(t, 10, item.Transactions[0].Quantity)
	assert.Equal(t, InitialStockRemark, item.Transactions[0].Remarks)
	assert.Equal(t, 10, DeriveStock(item))
}

func TestCreateItemWithoutInitialStock(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypeProduct, Code: "PD1", Name: "PUMP"}, 0)
	require.NoError(t, err)

	assert.Empty(t, item.Transactions)
	assert.Equal(t, 0, DeriveStock(item))
}

func TestCreateItemValidation(t *testing.T) {
	tests := []struct {
		name   string
		fields ItemFields
	}{
		{name: "Empty code", fields: ItemFields{Type: models.ItemTypePart, Code: "", Name: "WIDGET"}},
		{name: "Empty name", fields: ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "  "}},
		{name: "Unknown type", fields: ItemFields{Type: "gadget", Code: "CT1", Name: "WIDGET"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()

			_, err := store.CreateItem(tt.fields, 0)

			var validationErr *custom_error.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Empty(t, store.Items(), "nothing persists on a rejected create")
		})
	}
}

func TestCreateItemRejectsDuplicateCodeCaseInsensitively(t *testing.T) {
	store := newTestStore()

	_, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET"}, 0)
	require.NoError(t, err)

	_, err = store.CreateItem(ItemFields{Type: models.ItemTypeProduct, Code: "ct1", Name: "OTHER"}, 0)

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Len(t, store.Items(), 1)
}

func TestUpdateItemRevalidatesCodeAgainstOthers(t *testing.T) {
	store := newTestStore()

	first, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET"}, 0)
	require.NoError(t, err)
	second, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT2", Name: "BRACKET"}, 0)
	require.NoError(t, err)

	taken := "ct1"
	_, err = store.UpdateItem(second.ID, ItemUpdate{Code: &taken})
	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	// Re-submitting an item's own code is not a collision.
	own := "CT1"
	newName := "WIDGET MK2"
	updated, err := store.UpdateItem(first.ID, ItemUpdate{Code: &own, Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "WIDGET MK2", updated.Name)
	assert.Equal(t, "CT1", updated.Code)
}

func TestUpdateItemMergesOnlyGivenFields(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{
		Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET", DrawingNumber: "DWG-7",
	}, 0)
	require.NoError(t, err)

	spec := "stainless"
	updated, err := store.UpdateItem(item.ID, ItemUpdate{Spec: &spec})
	require.NoError(t, err)

	assert.Equal(t, "stainless", updated.Spec)
	assert.Equal(t, "DWG-7", updated.DrawingNumber)
	assert.Equal(t, "WIDGET", updated.Name)
}

func TestUpdateItemRejectionLeavesEveryFieldUntouched(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET"}, 0)
	require.NoError(t, err)

	// The code change alone is valid; the blank name rejects the whole edit.
	code := "CT9"
	blank := "   "
	_, err = store.UpdateItem(item.ID, ItemUpdate{Code: &code, Name: &blank})
	var validationErr *custom_error.ValidationError
	require.ErrorAs(t, err, &validationErr)

	fresh := mustItem(t, store, item.ID)
	assert.Equal(t, "CT1", fresh.Code)
	assert.Equal(t, "WIDGET", fresh.Name)
}

func TestDeleteItemCascades(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET"}, 5)
	require.NoError(t, err)

	require.NoError(t, store.DeleteItem(item.ID))
	assert.Empty(t, store.Items())
	assert.ErrorIs(t, store.DeleteItem(item.ID), ErrItemNotFound)
}

func TestOutboundCannotExceedDerivedStock(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET"}, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, DeriveStock(mustItem(t, store, item.ID)))

	_, err = store.AddMovement(item.ID, MovementInput{Type: models.MovementOutbound, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, DeriveStock(mustItem(t, store, item.ID)))

	_, err = store.AddMovement(item.ID, MovementInput{Type: models.MovementOutbound, Quantity: 20})
	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 7, DeriveStock(mustItem(t, store, item.ID)), "stock unchanged after rejection")
}

func TestAddMovementRejectsNonPositiveQuantity(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET"}, 0)
	require.NoError(t, err)

	for _, quantity := range []int{0, -4} {
		_, err = store.AddMovement(item.ID, MovementInput{Type: models.MovementInbound, Quantity: quantity})
		var validationErr *custom_error.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	}
	assert.Empty(t, mustItem(t, store, item.ID).Transactions)
}

func TestSerialRangeSubmission(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypeProduct, Code: "PD1", Name: "PUMP"}, 0)
	require.NoError(t, err)

	txs, err := store.AddMovement(item.ID, MovementInput{
		Type:         models.MovementInbound,
		SerialNumber: "SN00001~SN00003",
	})
	require.NoError(t, err)
	require.Len(t, txs, 3)

	for i, tx := range txs {
		assert.Equal(t, 1, tx.Quantity, "each expanded serial carries quantity 1")
		assert.Equal(t, []string{"SN00001", "SN00002", "SN00003"}[i], tx.SerialNumber)
	}
	assert.Equal(t, 3, DeriveStock(mustItem(t, store, item.ID)))

	registry := store.UsedSerials()
	assert.Contains(t, registry, "SN00001")
	assert.Contains(t, registry, "SN00002")
	assert.Contains(t, registry, "SN00003")

	// Resubmitting an already registered serial is rejected in full.
	_, err = store.AddMovement(item.ID, MovementInput{
		Type:         models.MovementInbound,
		SerialNumber: "SN00002",
	})
	var validationErr *custom_error.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "SN00002")
	assert.Equal(t, 3, DeriveStock(mustItem(t, store, item.ID)))
}

func TestSerialSubmissionIsAllOrNothing(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypeProduct, Code: "PD1", Name: "PUMP"}, 0)
	require.NoError(t, err)

	_, err = store.AddMovement(item.ID, MovementInput{Type: models.MovementInbound, SerialNumber: "SN00001~00003"})
	require.NoError(t, err)

	// SN00004 through SN00006 are fresh but SN00003 collides, so zero
	// transactions from this submission may persist.
	_, err = store.AddMovement(item.ID, MovementInput{Type: models.MovementInbound, SerialNumber: "SN00003~00006"})
	var validationErr *custom_error.ValidationError
	require.ErrorAs(t, err, &validationErr)

	assert.Len(t, mustItem(t, store, item.ID).Transactions, 3)
	assert.NotContains(t, store.UsedSerials(), "SN00004")
}

func TestSerialDuplicatesAcrossItems(t *testing.T) {
	store := newTestStore()

	first, err := store.CreateItem(ItemFields{Type: models.ItemTypeProduct, Code: "PD1", Name: "PUMP"}, 0)
	require.NoError(t, err)
	second, err := store.CreateItem(ItemFields{Type: models.ItemTypeProduct, Code: "PD2", Name: "VALVE"}, 0)
	require.NoError(t, err)

	_, err = store.AddMovement(first.ID, MovementInput{Type: models.MovementInbound, SerialNumber: "SN00001"})
	require.NoError(t, err)

	// Uniqueness is global across the whole inventory, not per item.
	_, err = store.AddMovement(second.ID, MovementInput{Type: models.MovementInbound, SerialNumber: "sn00001"})
	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSerialRangeTooLargeRejectsSubmission(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypeProduct, Code: "PD1", Name: "PUMP"}, 0)
	require.NoError(t, err)

	_, err = store.AddMovement(item.ID, MovementInput{Type: models.MovementInbound, SerialNumber: "SN00001~00105"})

	var rangeErr *custom_error.RangeTooLargeError
	assert.ErrorAs(t, err, &rangeErr)
	assert.Empty(t, mustItem(t, store, item.ID).Transactions)
}

func TestSerializedOutboundCheckedAgainstStock(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypeProduct, Code: "PD1", Name: "PUMP"}, 2)
	require.NoError(t, err)

	_, err = store.AddMovement(item.ID, MovementInput{
		Type:         models.MovementOutbound,
		SerialNumber: "SN00001~00003",
		CustomerName: "ACME",
	})

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 2, DeriveStock(mustItem(t, store, item.ID)))
}

func TestUpdateTransaction(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET"}, 10)
	require.NoError(t, err)
	txID := mustItem(t, store, item.ID).Transactions[0].ID

	quantity := 12
	remarks := "recount"
	tx, err := store.UpdateTransaction(item.ID, txID, TransactionUpdate{Quantity: &quantity, Remarks: &remarks})
	require.NoError(t, err)
	assert.Equal(t, 12, tx.Quantity)
	assert.Equal(t, "recount", tx.Remarks)
	assert.Equal(t, 12, DeriveStock(mustItem(t, store, item.ID)))

	zero := 0
	_, err = store.UpdateTransaction(item.ID, txID, TransactionUpdate{Quantity: &zero})
	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 12, DeriveStock(mustItem(t, store, item.ID)), "rejected edit leaves the record untouched")
}

func TestUpdateTransactionSerialKeepsGlobalUniqueness(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypeProduct, Code: "PD1", Name: "PUMP"}, 0)
	require.NoError(t, err)

	txs, err := store.AddMovement(item.ID, MovementInput{Type: models.MovementInbound, SerialNumber: "SN00001~00002"})
	require.NoError(t, err)

	// Moving a serial onto a value another record holds is rejected.
	taken := "SN00002"
	_, err = store.UpdateTransaction(item.ID, txs[0].ID, TransactionUpdate{SerialNumber: &taken})
	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	// Re-writing a record's own serial is not a collision.
	own := "sn00001"
	tx, err := store.UpdateTransaction(item.ID, txs[0].ID, TransactionUpdate{SerialNumber: &own})
	require.NoError(t, err)
	assert.Equal(t, "SN00001", tx.SerialNumber)
}

func TestUpdateTransactionRejectionLeavesEveryFieldUntouched(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypeProduct, Code: "PD1", Name: "PUMP"}, 0)
	require.NoError(t, err)

	txs, err := store.AddMovement(item.ID, MovementInput{Type: models.MovementInbound, SerialNumber: "SN00001~00002"})
	require.NoError(t, err)

	// The quantity change alone is valid; the colliding serial rejects the
	// whole edit, so the derived stock must not move either.
	quantity := 7
	taken := "SN00002"
	_, err = store.UpdateTransaction(item.ID, txs[0].ID, TransactionUpdate{Quantity: &quantity, SerialNumber: &taken})
	var validationErr *custom_error.ValidationError
	require.ErrorAs(t, err, &validationErr)

	fresh := mustItem(t, store, item.ID)
	assert.Equal(t, 1, fresh.Transactions[0].Quantity)
	assert.Equal(t, "SN00001", fresh.Transactions[0].SerialNumber)
	assert.Equal(t, 2, DeriveStock(fresh))
}

func TestDeleteTransaction(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET"}, 10)
	require.NoError(t, err)
	txID := mustItem(t, store, item.ID).Transactions[0].ID

	require.NoError(t, store.DeleteTransaction(item.ID, txID))
	assert.Equal(t, 0, DeriveStock(mustItem(t, store, item.ID)))
	assert.ErrorIs(t, store.DeleteTransaction(item.ID, txID), ErrTransactionNotFound)
}

func TestItemsReturnsDeepCopies(t *testing.T) {
	store := newTestStore()

	item, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET"}, 5)
	require.NoError(t, err)

	items := store.Items()
	items[0].Name = "TAMPERED"
	items[0].Transactions[0].Quantity = 999

	fresh := mustItem(t, store, item.ID)
	assert.Equal(t, "WIDGET", fresh.Name)
	assert.Equal(t, 5, fresh.Transactions[0].Quantity)
}

func TestReplaceSwapsTheWholeCollection(t *testing.T) {
	store := newTestStore()

	_, err := store.CreateItem(ItemFields{Type: models.ItemTypePart, Code: "CT1", Name: "WIDGET"}, 5)
	require.NoError(t, err)

	replacement := []models.Item{
		{ID: uuid.New(), Type: models.ItemTypeProduct, Code: "PD9", Name: "MOTOR"},
	}
	store.Replace(replacement)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "PD9", items[0].Code)
}

func mustItem(t *testing.T, store *Store, id uuid.UUID) models.Item {
	t.Helper()
	item, err := store.Item(id)
	require.NoError(t, err)
	return item
}
