// Package registry is the name directory clients use to find the store.
// It maps a logical service name to the endpoint serving it.
package registry

import (
	"sort"
	"sync"
	"time"
)

// Entry is a single name binding.
type Entry struct {
	Name     string    `json:"name"`
	Endpoint string    `json:"endpoint"`
	BoundAt  time.Time `json:"bound_at"`
}

// Directory holds name bindings in memory. Bindings do not expire; they live
// until Unbind or process exit.
type Directory struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewDirectory() *Directory {
	return &Directory{
		entries: make(map[string]Entry),
	}
}

// Bind associates name with endpoint, replacing any previous binding.
func (d *Directory) Bind(name, endpoint string) Entry {
	e := Entry{Name: name, Endpoint: endpoint, BoundAt: time.Now()}

	d.mu.Lock()
	d.entries[name] = e
	d.mu.Unlock()

	return e
}

// Unbind removes name and reports whether it was bound.
func (d *Directory) Unbind(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.entries[name]
	delete(d.entries, name)
	return ok
}

// Lookup returns the binding for name.
func (d *Directory) Lookup(name string) (Entry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[name]
	return e, ok
}

// Names returns all bound names in sorted order.
func (d *Directory) Names() []string {
	d.mu.Lock()
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	d.mu.Unlock()

	sort.Strings(names)
	return names
}
