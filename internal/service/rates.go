package service

import (
	"context"

	"cab/internal/domain"
	"cab/internal/rates"
)

// RateService applies admin edits to the shared rate table.
type RateService struct {
	table *rates.Table
}

// NewRateService creates a new RateService.
func NewRateService(table *rates.Table) *RateService {
	return &RateService{table: table}
}

// RateEdit is one proposed change to a single vehicle's pricing. A nil
// field means "leave unchanged".
type RateEdit struct {
	VehicleType domain.VehicleType
	BaseFare    *float64
	PerKm       *float64
}

// GetRates returns a snapshot of the current table.
func (s *RateService) GetRates(ctx context.Context) map[domain.VehicleType]domain.VehicleOption {
	return s.table.Snapshot()
}

// GetVehicle returns the live rate entry for one vehicle type.
func (s *RateService) GetVehicle(ctx context.Context, vt domain.VehicleType) (domain.VehicleOption, error) {
	opt, ok := s.table.Get(vt)
	if !ok {
		return domain.VehicleOption{}, ErrInvalidVehicleType
	}
	return opt, nil
}

// UpdateRates commits a batch of edits atomically. Negative values and
// unknown vehicle types are silently ignored; the previous value is
// retained. The table keeps exactly the declared vehicle types throughout.
func (s *RateService) UpdateRates(ctx context.Context, edits []RateEdit) (map[domain.VehicleType]domain.VehicleOption, error) {
	next := s.table.Snapshot()

	for _, edit := range edits {
		opt, ok := next[edit.VehicleType]
		if !ok {
			continue
		}
		if edit.BaseFare != nil && *edit.BaseFare >= 0 {
			opt.BaseFare = *edit.BaseFare
		}
		if edit.PerKm != nil && *edit.PerKm >= 0 {
			opt.PerKm = *edit.PerKm
		}
		next[edit.VehicleType] = opt
	}

	if err := s.table.Replace(next); err != nil {
		return nil, err
	}

	return next, nil
}
