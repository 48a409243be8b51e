package ports

import "moving-presurvey-service/internal/domain"

// Port: read-only lookup of the static sample directory.
// Implementations are immutable after construction and safe for concurrent use.
type Directory interface {
	Addresses() []domain.Address
	Depots() []domain.Place
	Areas() []domain.Area

	Address(id string) (domain.Address, bool)
	Depot(id string) (domain.Place, bool)
	Area(code string) (domain.Area, bool)

	Parking(addressID string) (domain.ParkingRules, bool)
	Building(addressID string) (domain.BuildingInfo, bool)
	Safety(addressID string) (domain.SafetyInfo, bool)

	// Raw GeoJSON FeatureCollection of postcode district polygons.
	Postcodes() []byte
}
