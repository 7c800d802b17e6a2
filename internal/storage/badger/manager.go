package badger

import (
	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/config"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
)

// Manager implements interfaces.StorageManager for Badger.
type Manager struct {
	db *BadgerDB
	kv *KVStorage
}

// NewManager opens the database and wires its key-value view.
func NewManager(logger *common.Logger, cfg *config.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, cfg)
	if err != nil {
		return nil, err
	}
	return &Manager{
		db: db,
		kv: NewKVStorage(db, logger),
	}, nil
}

// KeyValueStorage returns the preference store.
func (m *Manager) KeyValueStorage() interfaces.KeyValueStorage {
	return m.kv
}

// Close closes the database.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
