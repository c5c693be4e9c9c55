package runstore

import (
	"fmt"
	"sync"

	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/schema"
)

// SearchStoreManager manages the SearchStore instance.
type SearchStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	search       contract.SearchStore
}

var _ contract.StoreManager = &SearchStoreManager{} // Compile-time check

// GetSearchStore returns the search SearchStore.
func (mgr *SearchStoreManager) GetSearchStore() contract.SearchStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.search
}

// Global Manager instance for main logic
var (
	Manager   = &SearchStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore uses sync.Once to safely initialize the global store.
func InitStore(backend schema.StoreBackend, connStr string) error { // called in main entrypoint
	var initErr error

	initOnce.Do(func() {
		store, err := NewSearchStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize search store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.search = store
	})

	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.search != nil {
			_ = Manager.search.Close()
		}
	})
}
