package domain

// VehicleType identifies a vehicle class in the fleet.
type VehicleType string

const (
	VehicleTypeSedan VehicleType = "SEDAN"
	VehicleTypeSUV   VehicleType = "SUV"
)

// DefaultVehicleType is selected when a booking draft is created or reset.
const DefaultVehicleType = VehicleTypeSedan

// AllVehicleTypes lists every declared vehicle type. The rate table must
// always contain exactly these keys.
var AllVehicleTypes = []VehicleType{VehicleTypeSedan, VehicleTypeSUV}

// VehicleOption describes a bookable vehicle class and its pricing inputs.
type VehicleOption struct {
	Type     VehicleType
	Name     string
	Capacity string
	BaseFare float64 // whole rupees
	PerKm    float64 // rupees per kilometer
}

// DefaultRateTable returns the built-in per-vehicle rates.
func DefaultRateTable() map[VehicleType]VehicleOption {
	return map[VehicleType]VehicleOption{
		VehicleTypeSedan: {
			Type:     VehicleTypeSedan,
			Name:     "Sedan",
			Capacity: "1-4 Passengers",
			BaseFare: 150,
			PerKm:    18,
		},
		VehicleTypeSUV: {
			Type:     VehicleTypeSUV,
			Name:     "SUV",
			Capacity: "1-6 Passengers",
			BaseFare: 250,
			PerKm:    25,
		},
	}
}

// IsValidVehicleType reports whether t is one of the declared vehicle types.
func IsValidVehicleType(t VehicleType) bool {
	for _, v := range AllVehicleTypes {
		if v == t {
			return true
		}
	}
	return false
}
