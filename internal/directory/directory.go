// Package directory holds the external collaborators the core consumes but
// does not own: the user directory that resolves display names for opaque
// user ids, and the picture store that keeps image references for products.
package directory

import (
	"fmt"
	"sync"

	"auction-hub/internal/auctionerrors"
)

// UserDirectory resolves a user's display name from their opaque id.
type UserDirectory interface {
	DisplayName(userID string) (string, error)
}

// PictureStore keeps picture references attached to products.
type PictureStore interface {
	Attach(productID string, refs ...string)
	PicturesFor(productID string) []string
	Detach(productID string)
}

// StaticDirectory is a concurrency-safe in-memory UserDirectory, used as the
// stand-in for the real identity provider.
type StaticDirectory struct {
	mu    sync.RWMutex
	names map[string]string // key: userID -> value: display name
}

// NewStaticDirectory creates an empty directory
func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{names: make(map[string]string)}
}

// Register records a user's display name
func (d *StaticDirectory) Register(userID, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[userID] = name
}

// DisplayName returns the display name registered for the user id
func (d *StaticDirectory) DisplayName(userID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	name, ok := d.names[userID]
	if !ok {
		return "", fmt.Errorf("display name for %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return name, nil
}

// MemoryPictureStore is a concurrency-safe in-memory PictureStore.
type MemoryPictureStore struct {
	mu   sync.RWMutex
	refs map[string][]string // key: productID -> value: picture references
}

// NewMemoryPictureStore creates an empty picture store
func NewMemoryPictureStore() *MemoryPictureStore {
	return &MemoryPictureStore{refs: make(map[string][]string)}
}

// Attach appends picture references to a product
func (p *MemoryPictureStore) Attach(productID string, refs ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs[productID] = append(p.refs[productID], refs...)
}

// PicturesFor returns the picture references attached to a product
func (p *MemoryPictureStore) PicturesFor(productID string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.refs[productID]...)
}

// Detach drops all picture references for a product
func (p *MemoryPictureStore) Detach(productID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.refs, productID)
}
