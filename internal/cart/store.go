// Package cart holds each user's per-tenant cart: an ordered,
// duplicate-free set of product ids per store. The store is an explicit,
// injectable container persisted as a versioned JSON snapshot; loading an
// older snapshot runs a migration step rather than merging defaults
// implicitly.
package cart

import (
	"encoding/json"
	"fmt"
	"sync"
)

// SnapshotVersion is the current persisted schema version.
const SnapshotVersion = 2

// TenantCart is one user's cart for one store.
type TenantCart struct {
	ProductIDs []string `json:"product_ids"`
}

type snapshot struct {
	Version int `json:"version"`
	// Carts maps user id -> tenant slug -> cart.
	Carts map[string]map[string]TenantCart `json:"carts"`
}

// legacy v1 layout: bare id lists without the TenantCart wrapper.
type snapshotV1 struct {
	Version int                            `json:"version"`
	Carts   map[string]map[string][]string `json:"carts"`
}

// Store is the cart state container. All operations are safe for concurrent
// use; every mutation is persisted through the configured Storage.
type Store struct {
	storage Storage
	mu      sync.Mutex
	carts   map[string]map[string]TenantCart
}

// NewStore loads (and migrates, if needed) the persisted snapshot.
func NewStore(storage Storage) (*Store, error) {
	s := &Store{
		storage: storage,
		carts:   make(map[string]map[string]TenantCart),
	}

	raw, err := storage.Load()
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		snap, err := migrate(raw)
		if err != nil {
			return nil, err
		}
		s.carts = snap.Carts
	}
	return s, nil
}

// migrate decodes a snapshot of any known version into the current layout.
func migrate(raw []byte) (*snapshot, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}

	switch probe.Version {
	case SnapshotVersion:
		var snap snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			return nil, fmt.Errorf("failed to decode cart snapshot v%d: %w", SnapshotVersion, err)
		}
		if snap.Carts == nil {
			snap.Carts = make(map[string]map[string]TenantCart)
		}
		return &snap, nil
	case 1:
		var old snapshotV1
		if err := json.Unmarshal(raw, &old); err != nil {
			return nil, fmt.Errorf("failed to decode cart snapshot v1: %w", err)
		}
		snap := &snapshot{
			Version: SnapshotVersion,
			Carts:   make(map[string]map[string]TenantCart),
		}
		for userID, tenants := range old.Carts {
			snap.Carts[userID] = make(map[string]TenantCart, len(tenants))
			for slug, ids := range tenants {
				snap.Carts[userID][slug] = TenantCart{ProductIDs: dedupe(ids)}
			}
		}
		return snap, nil
	default:
		return nil, fmt.Errorf("unknown cart snapshot version %d", probe.Version)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// persist must be called with the mutex held.
func (s *Store) persist() error {
	data, err := json.Marshal(snapshot{
		Version: SnapshotVersion,
		Carts:   s.carts,
	})
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	return s.storage.Save(data)
}

// AddProduct adds a product to the user's cart for a tenant. Adding an id
// already present leaves the cart unchanged.
func (s *Store) AddProduct(userID, tenantSlug, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenants, ok := s.carts[userID]
	if !ok {
		tenants = make(map[string]TenantCart)
		s.carts[userID] = tenants
	}
	current := tenants[tenantSlug]
	for _, id := range current.ProductIDs {
		if id == productID {
			return nil
		}
	}
	current.ProductIDs = append(current.ProductIDs, productID)
	tenants[tenantSlug] = current
	return s.persist()
}

// RemoveProduct removes a product from the user's cart for a tenant.
func (s *Store) RemoveProduct(userID, tenantSlug, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenants, ok := s.carts[userID]
	if !ok {
		return nil
	}
	current, ok := tenants[tenantSlug]
	if !ok {
		return nil
	}
	kept := current.ProductIDs[:0]
	for _, id := range current.ProductIDs {
		if id != productID {
			kept = append(kept, id)
		}
	}
	current.ProductIDs = kept
	tenants[tenantSlug] = current
	return s.persist()
}

// ToggleProduct adds the product when absent and removes it when present.
// It reports whether the product is in the cart afterwards.
func (s *Store) ToggleProduct(userID, tenantSlug, productID string) (bool, error) {
	if s.HasProduct(userID, tenantSlug, productID) {
		return false, s.RemoveProduct(userID, tenantSlug, productID)
	}
	return true, s.AddProduct(userID, tenantSlug, productID)
}

// HasProduct reports whether the product is in the user's cart for a tenant.
func (s *Store) HasProduct(userID, tenantSlug, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.carts[userID][tenantSlug].ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// ProductIDs returns a copy of the user's cart contents for a tenant.
func (s *Store) ProductIDs(userID, tenantSlug string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.carts[userID][tenantSlug].ProductIDs
	return append([]string(nil), ids...)
}

// Count returns the number of products in the user's cart for a tenant.
func (s *Store) Count(userID, tenantSlug string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts[userID][tenantSlug].ProductIDs)
}

// ClearCart drops the user's cart for one tenant.
func (s *Store) ClearCart(userID, tenantSlug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenants, ok := s.carts[userID]
	if !ok {
		return nil
	}
	if _, ok := tenants[tenantSlug]; !ok {
		return nil
	}
	delete(tenants, tenantSlug)
	return s.persist()
}

// ClearAllCarts drops every cart of the user.
func (s *Store) ClearAllCarts(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[userID]; !ok {
		return nil
	}
	delete(s.carts, userID)
	return s.persist()
}

// Prune removes ids not present in validIDs (products archived or deleted
// since they were added) and returns what was removed, so callers can warn
// the user. The cart self-heals rather than failing checkout.
func (s *Store) Prune(userID, tenantSlug string, validIDs []string) ([]string, error) {
	valid := make(map[string]bool, len(validIDs))
	for _, id := range validIDs {
		valid[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tenants, ok := s.carts[userID]
	if !ok {
		return nil, nil
	}
	current, ok := tenants[tenantSlug]
	if !ok {
		return nil, nil
	}

	var removed []string
	kept := current.ProductIDs[:0]
	for _, id := range current.ProductIDs {
		if valid[id] {
			kept = append(kept, id)
		} else {
			removed = append(removed, id)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}
	current.ProductIDs = kept
	tenants[tenantSlug] = current
	return removed, s.persist()
}
