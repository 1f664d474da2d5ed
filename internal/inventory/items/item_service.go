package items

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockledger/internal/authority"
	"stockledger/internal/ledger"
	"stockledger/internal/reconcile"
	"stockledger/pkg/models"
	"stockledger/pkg/roles"
)

// ItemService routes item and movement mutations through the ledger store and
// the secret gate, and notifies the reconciler after every applied change.
type ItemService struct {
	store *ledger.Store
	gate  *authority.Gate
	rec   *reconcile.Reconciler
	log   *zap.Logger
}

func NewItemService(store *ledger.Store, gate *authority.Gate, rec *reconcile.Reconciler, log *zap.Logger) *ItemService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ItemService{store: store, gate: gate, rec: rec, log: log}
}

// itemView decorates an item with its derived stock for display, with
// transactions most recent first. Stock itself is never persisted.
type itemView struct {
	models.Item
	Stock int `json:"stock"`
}

func newItemView(item models.Item) itemView {
	view := itemView{Item: item, Stock: ledger.DeriveStock(item)}
	sort.SliceStable(view.Transactions, func(i, j int) bool {
		return view.Transactions[i].Date.After(view.Transactions[j].Date)
	})
	return view
}

func (s *ItemService) listItems(role roles.Role, typeFilter models.ItemType) []itemView {
	views := []itemView{}
	for _, item := range s.store.Items() {
		if !role.CanAccess(item.Type) {
			continue
		}
		if typeFilter != "" && item.Type != typeFilter {
			continue
		}
		views = append(views, newItemView(item))
	}
	return views
}

func (s *ItemService) getItem(id uuid.UUID) (itemView, error) {
	item, err := s.store.Item(id)
	if err != nil {
		return itemView{}, err
	}
	return newItemView(item), nil
}

func (s *ItemService) createItem(fields ledger.ItemFields, initialQuantity int) (itemView, error) {
	item, err := s.store.CreateItem(fields, initialQuantity)
	if err != nil {
		return itemView{}, err
	}
	s.collectionChanged()
	return newItemView(item), nil
}

// updateItem commits an item field edit behind the secret gate.
func (s *ItemService) updateItem(role roles.Role, secret string, id uuid.UUID, update ledger.ItemUpdate) (itemView, error) {
	var updated models.Item

	pending := s.gate.Request(role, authority.ActionEditItem, func() error {
		item, err := s.store.UpdateItem(id, update)
		if err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err := pending.Confirm(secret); err != nil {
		return itemView{}, err
	}

	s.collectionChanged()
	return newItemView(updated), nil
}

func (s *ItemService) deleteItem(role roles.Role, secret string, id uuid.UUID) error {
	pending := s.gate.Request(role, authority.ActionDeleteItem, func() error {
		return s.store.DeleteItem(id)
	})
	if err := pending.Confirm(secret); err != nil {
		return err
	}

	s.collectionChanged()
	return nil
}

func (s *ItemService) addMovement(itemID uuid.UUID, input ledger.MovementInput) ([]models.Transaction, error) {
	txs, err := s.store.AddMovement(itemID, input)
	if err != nil {
		return nil, err
	}
	s.collectionChanged()
	return txs, nil
}

func (s *ItemService) updateTransaction(role roles.Role, secret string, itemID, txID uuid.UUID, update ledger.TransactionUpdate) (models.Transaction, error) {
	var updated models.Transaction

	pending := s.gate.Request(role, authority.ActionEditTransaction, func() error {
		tx, err := s.store.UpdateTransaction(itemID, txID, update)
		if err != nil {
			return err
		}
		updated = tx
		return nil
	})
	if err := pending.Confirm(secret); err != nil {
		return models.Transaction{}, err
	}

	s.collectionChanged()
	return updated, nil
}

func (s *ItemService) deleteTransaction(role roles.Role, secret string, itemID, txID uuid.UUID) error {
	pending := s.gate.Request(role, authority.ActionDeleteTransaction, func() error {
		return s.store.DeleteTransaction(itemID, txID)
	})
	if err := pending.Confirm(secret); err != nil {
		return err
	}

	s.collectionChanged()
	return nil
}

func (s *ItemService) collectionChanged() {
	if s.rec == nil {
		return
	}
	s.rec.CollectionChanged(s.store.Snapshot())
}
