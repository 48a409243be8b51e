// Package sample serves the static demo directory: customer addresses,
// depots, postcode areas and per-address site metadata.
package sample

import (
	"embed"
	"errors"
	"fmt"
	"moving-presurvey-service/internal/domain"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

//go:embed data/sample.json data/postcodes.geo.json
var embedded embed.FS

type placeSeed struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	ImageURL     string  `json:"image_url"`
	SatelliteURL string  `json:"satellite_url"`
	TypeGuess    string  `json:"type_guess"`
}

type areaSeed struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Centroid    []float64 `json:"centroid"` // [lat, lng]
	DemandIndex int       `json:"demand_index"`
}

type parkingSeed struct {
	CPZ            string   `json:"cpz"`
	Restrictions   []string `json:"restrictions"`
	RedRoute       bool     `json:"red_route"`
	BusLane        bool     `json:"bus_lane"`
	BayTypes       []string `json:"bay_types"`
	WaiverRequired bool     `json:"waiver_required"`
	Notes          string   `json:"notes"`
}

type buildingSeed struct {
	BuildingType string `json:"building_type"`
	Floors       int    `json:"floors"`
	Lift         bool   `json:"lift"`
	Stairs       bool   `json:"stairs"`
	DoorWidthCm  int    `json:"door_width_cm"`
	StairWidthCm int    `json:"stair_width_cm"`
	RearAccess   bool   `json:"rear_access"`
}

type safetySeed struct {
	WidthRestriction *string `json:"width_restriction"`
	OneWay           bool    `json:"one_way"`
	CrimeRisk        string  `json:"crime_risk"`
	Notes            string  `json:"notes"`
}

type seedFile struct {
	Addresses []placeSeed             `json:"addresses"`
	Depots    []placeSeed             `json:"depots"`
	Areas     []areaSeed              `json:"areas"`
	Parking   map[string]parkingSeed  `json:"parking"`
	Buildings map[string]buildingSeed `json:"buildings"`
	Safety    map[string]safetySeed   `json:"safety"`
}

// Directory is an immutable, in-memory implementation of ports.Directory.
type Directory struct {
	addresses []domain.Address
	depots    []domain.Place
	areas     []domain.Area

	addrByID  map[string]domain.Address
	depotByID map[string]domain.Place
	areaByKey map[string]domain.Area

	parking   map[string]domain.ParkingRules
	buildings map[string]domain.BuildingInfo
	safety    map[string]domain.SafetyInfo

	postcodes []byte
}

// Load builds the directory from the JSON file at path, or from the
// embedded sample data when path is empty.
func Load(path string) (*Directory, error) {
	var (
		raw []byte
		err error
	)
	if strings.TrimSpace(path) == "" {
		raw, err = embedded.ReadFile("data/sample.json")
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load sample data: read %q: %w", path, err)
	}

	postcodes, err := embedded.ReadFile("data/postcodes.geo.json")
	if err != nil {
		return nil, fmt.Errorf("load sample data: read postcodes: %w", err)
	}
	if !json.Valid(postcodes) {
		return nil, errors.New("load sample data: postcodes is not valid JSON")
	}

	return Parse(raw, postcodes)
}

// Parse validates and indexes a sample data document.
func Parse(raw []byte, postcodes []byte) (*Directory, error) {
	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("load sample data: parse json: %w", err)
	}

	d := &Directory{
		addrByID:  make(map[string]domain.Address, len(data.Addresses)),
		depotByID: make(map[string]domain.Place, len(data.Depots)),
		areaByKey: make(map[string]domain.Area, len(data.Areas)),
		parking:   make(map[string]domain.ParkingRules, len(data.Parking)),
		buildings: make(map[string]domain.BuildingInfo, len(data.Buildings)),
		safety:    make(map[string]domain.SafetyInfo, len(data.Safety)),
		postcodes: postcodes,
	}

	for i, item := range data.Addresses {
		p, err := toPlace(item)
		if err != nil {
			return nil, fmt.Errorf("load sample data: address at index %d: %w", i+1, err)
		}
		if _, dup := d.addrByID[p.ID]; dup {
			return nil, fmt.Errorf("load sample data: duplicate address id %q", p.ID)
		}

		a := domain.Address{
			Place:        p,
			ImageURL:     item.ImageURL,
			SatelliteURL: item.SatelliteURL,
			TypeGuess:    item.TypeGuess,
		}
		d.addresses = append(d.addresses, a)
		d.addrByID[a.ID] = a
	}

	for i, item := range data.Depots {
		p, err := toPlace(item)
		if err != nil {
			return nil, fmt.Errorf("load sample data: depot at index %d: %w", i+1, err)
		}
		if _, dup := d.depotByID[p.ID]; dup {
			return nil, fmt.Errorf("load sample data: duplicate depot id %q", p.ID)
		}
		d.depots = append(d.depots, p)
		d.depotByID[p.ID] = p
	}

	for i, item := range data.Areas {
		code := strings.ToUpper(strings.TrimSpace(item.Code))
		if code == "" {
			return nil, fmt.Errorf("load sample data: area at index %d: code cannot be empty", i+1)
		}
		if len(item.Centroid) != 2 {
			return nil, fmt.Errorf("load sample data: area %q: centroid must be [lat, lng]", code)
		}
		if _, dup := d.areaByKey[code]; dup {
			return nil, fmt.Errorf("load sample data: duplicate area code %q", code)
		}

		a := domain.Area{
			Code:        code,
			Name:        item.Name,
			Centroid:    domain.Coordinates{Lat: item.Centroid[0], Lng: item.Centroid[1]},
			DemandIndex: item.DemandIndex,
		}
		d.areas = append(d.areas, a)
		d.areaByKey[code] = a
	}

	for id, p := range data.Parking {
		d.parking[id] = domain.ParkingRules{
			CPZ:            p.CPZ,
			Restrictions:   p.Restrictions,
			RedRoute:       p.RedRoute,
			BusLane:        p.BusLane,
			BayTypes:       p.BayTypes,
			WaiverRequired: p.WaiverRequired,
			Notes:          p.Notes,
		}
	}
	for id, b := range data.Buildings {
		d.buildings[id] = domain.BuildingInfo(b)
	}
	for id, s := range data.Safety {
		d.safety[id] = domain.SafetyInfo(s)
	}

	return d, nil
}

func toPlace(item placeSeed) (domain.Place, error) {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return domain.Place{}, errors.New("id cannot be empty")
	}
	if item.Lat < -90 || item.Lat > 90 || item.Lng < -180 || item.Lng > 180 {
		return domain.Place{}, fmt.Errorf("id %q: coordinates out of range", id)
	}
	return domain.Place{ID: id, Label: item.Label, Lat: item.Lat, Lng: item.Lng}, nil
}

func (d *Directory) Addresses() []domain.Address { return d.addresses }
func (d *Directory) Depots() []domain.Place      { return d.depots }
func (d *Directory) Areas() []domain.Area        { return d.areas }

func (d *Directory) Address(id string) (domain.Address, bool) {
	a, ok := d.addrByID[id]
	return a, ok
}

func (d *Directory) Depot(id string) (domain.Place, bool) {
	p, ok := d.depotByID[id]
	return p, ok
}

// Area codes are matched case-insensitively.
func (d *Directory) Area(code string) (domain.Area, bool) {
	a, ok := d.areaByKey[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

func (d *Directory) Parking(addressID string) (domain.ParkingRules, bool) {
	p, ok := d.parking[addressID]
	return p, ok
}

func (d *Directory) Building(addressID string) (domain.BuildingInfo, bool) {
	b, ok := d.buildings[addressID]
	return b, ok
}

func (d *Directory) Safety(addressID string) (domain.SafetyInfo, bool) {
	s, ok := d.safety[addressID]
	return s, ok
}

func (d *Directory) Postcodes() []byte { return d.postcodes }
