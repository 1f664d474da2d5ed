package container

import (
	"go.uber.org/zap"

	"stockledger/internal/authority"
	"stockledger/internal/config"
	"stockledger/internal/core/logger"
	"stockledger/internal/inventory/backup"
	"stockledger/internal/inventory/items"
	"stockledger/internal/inventory/serials"
	"stockledger/internal/inventory/syncstate"
	"stockledger/internal/ledger"
	"stockledger/internal/localstore"
	"stockledger/internal/middleware"
	"stockledger/internal/reconcile"
	"stockledger/internal/remote"
	"stockledger/pkg/security"
)

type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Store      *ledger.Store
	Gate       *authority.Gate
	Tokens     *security.TokenService
	Reconciler *reconcile.Reconciler

	LoginHandler       *security.LoginHandler
	ItemHandler        *items.ItemHandler
	TransactionHandler *items.TransactionHandler
	SerialHandler      *serials.SerialHandler
	SyncHandler        *syncstate.SyncHandler
	BackupHandler      *backup.BackupHandler
}

func NewAppContainer(cfg *config.Config, log *zap.Logger) *Container {
	store := ledger.NewStore()
	gate := authority.NewGate(cfg.Auth.AdminSecret, cfg.Auth.ProductSecret)
	tokens := security.NewTokenService(cfg.Auth.JWTSecret)

	local := localstore.New(cfg.Local.SnapshotPath)

	var remoteStore remote.Store
	if cfg.Remote.BaseURL != "" {
		remoteStore = remote.NewClient(cfg.Remote)
	}

	rec := reconcile.NewReconciler(remoteStore, local, cfg.Sync.PushDebounce, logger.Named(log, "reconcile"))
	// Surface sync failures on the liveness endpoint; local operation
	// continues either way.
	rec.OnStatusChange(func(status reconcile.Status) {
		if status == reconcile.StatusError {
			middleware.UpdateHealthStatus("degraded")
		} else {
			middleware.UpdateHealthStatus("ok")
		}
	})

	itemService := items.NewItemService(store, gate, rec, logger.Named(log, "items"))

	return &Container{
		Config:             cfg,
		Logger:             log,
		Store:              store,
		Gate:               gate,
		Tokens:             tokens,
		Reconciler:         rec,
		LoginHandler:       security.NewLoginHandler(gate, tokens),
		ItemHandler:        items.NewItemHandler(itemService),
		TransactionHandler: items.NewTransactionHandler(itemService),
		SerialHandler:      serials.NewSerialHandler(store),
		SyncHandler:        syncstate.NewSyncHandler(rec),
		BackupHandler:      backup.NewBackupHandler(store, gate, rec),
	}
}
