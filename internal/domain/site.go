package domain

// Kerbside parking and loading rules at a customer address.
type ParkingRules struct {
	CPZ            string
	Restrictions   []string
	RedRoute       bool
	BusLane        bool
	BayTypes       []string
	WaiverRequired bool
	Notes          string
}

// Physical access details of the building at a customer address.
type BuildingInfo struct {
	BuildingType string
	Floors       int
	Lift         bool
	Stairs       bool
	DoorWidthCm  int
	StairWidthCm int
	RearAccess   bool
}

// Street-level hazards for the crew and vehicle.
type SafetyInfo struct {
	WidthRestriction *string
	OneWay           bool
	CrimeRisk        string
	Notes            string
}
