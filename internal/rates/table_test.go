package rates

import (
	"sync"
	"testing"

	"cab/internal/domain"
)

func TestReplace_PartialTable_Rejected(t *testing.T) {
	t.Parallel()

	table := NewTable()

	partial := map[domain.VehicleType]domain.VehicleOption{
		domain.VehicleTypeSedan: {Type: domain.VehicleTypeSedan, Name: "Sedan", BaseFare: 100, PerKm: 10},
	}
	if err := table.Replace(partial); err == nil {
		t.Fatal("expected partial table to be rejected")
	}

	// The table keeps its previous contents.
	if opt, ok := table.Get(domain.VehicleTypeSUV); !ok || opt.BaseFare != 250 {
		t.Errorf("expected SUV entry to survive, got %+v ok=%v", opt, ok)
	}
}

func TestReplace_WrongKeys_Rejected(t *testing.T) {
	t.Parallel()

	table := NewTable()

	wrong := map[domain.VehicleType]domain.VehicleOption{
		domain.VehicleTypeSedan:             {Type: domain.VehicleTypeSedan},
		domain.VehicleType("AUTO_RICKSHAW"): {},
	}
	if err := table.Replace(wrong); err == nil {
		t.Fatal("expected table with unknown key to be rejected")
	}
}

func TestReplace_CopiesInput(t *testing.T) {
	t.Parallel()

	table := NewTable()
	next := table.Snapshot()

	if err := table.Replace(next); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Mutating the caller's map after Replace must not leak in.
	entry := next[domain.VehicleTypeSedan]
	entry.BaseFare = 1
	next[domain.VehicleTypeSedan] = entry

	if opt, _ := table.Get(domain.VehicleTypeSedan); opt.BaseFare == 1 {
		t.Error("expected table to hold its own copy")
	}
}

func TestTable_ConcurrentReadsAndReplace(t *testing.T) {
	t.Parallel()

	table := NewTable()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, ok := table.Get(domain.VehicleTypeSedan); !ok {
					t.Error("sedan entry disappeared")
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			next := table.Snapshot()
			entry := next[domain.VehicleTypeSedan]
			entry.PerKm = float64(10 + j%10)
			next[domain.VehicleTypeSedan] = entry
			if err := table.Replace(next); err != nil {
				t.Errorf("replace failed: %v", err)
				return
			}
		}
	}()

	wg.Wait()
}
