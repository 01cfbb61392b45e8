package rates

import (
	"fmt"
	"sync"

	"cab/internal/domain"
)

// Table is the shared per-vehicle rate table. It is read by vehicle selection
// and the fare estimator and replaced atomically by admin saves. A read-write
// lock keeps it safe under concurrent HTTP handlers.
type Table struct {
	mu      sync.RWMutex
	options map[domain.VehicleType]domain.VehicleOption
}

// NewTable creates a table seeded with the built-in rates.
func NewTable() *Table {
	return &Table{options: domain.DefaultRateTable()}
}

// Get returns the current option for a vehicle type.
func (t *Table) Get(vt domain.VehicleType) (domain.VehicleOption, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	opt, ok := t.options[vt]
	return opt, ok
}

// Snapshot returns a copy of the whole table.
func (t *Table) Snapshot() map[domain.VehicleType]domain.VehicleOption {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[domain.VehicleType]domain.VehicleOption, len(t.options))
	for k, v := range t.options {
		out[k] = v
	}
	return out
}

// Replace swaps in a new table in one step. The new table must contain
// exactly the declared vehicle types; a partial table is rejected.
func (t *Table) Replace(options map[domain.VehicleType]domain.VehicleOption) error {
	if len(options) != len(domain.AllVehicleTypes) {
		return fmt.Errorf("rate table must contain exactly %d vehicle types", len(domain.AllVehicleTypes))
	}
	for _, vt := range domain.AllVehicleTypes {
		if _, ok := options[vt]; !ok {
			return fmt.Errorf("rate table missing vehicle type %s", vt)
		}
	}

	copied := make(map[domain.VehicleType]domain.VehicleOption, len(options))
	for k, v := range options {
		copied[k] = v
	}

	t.mu.Lock()
	t.options = copied
	t.mu.Unlock()
	return nil
}
