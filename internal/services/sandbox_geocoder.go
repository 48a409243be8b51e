package services

import (
	"moving-presurvey-service/internal/domain"
	"strconv"
)

const sandboxLabelSuffix = " (sandbox match)"

// Default center for sandbox matches (central London).
var DefaultSandboxCenter = domain.Coordinates{Lat: 51.509, Lng: -0.118}

// Sandbox centers used by intake when no geocoding credential is configured.
var (
	SandboxDepotCenter    = domain.Coordinates{Lat: 51.472, Lng: -0.142}
	SandboxCustomerCenter = domain.Coordinates{Lat: 51.515, Lng: -0.141}
)

// SandboxGeocode deterministically maps text to a synthetic place near center.
//
// The same text always yields the same id and coordinates, across calls,
// restarts and platforms. Latitude lands in [center-0.03, center+0.03) and
// longitude in [center-0.05, center+0.05). Different texts may share a seed
// and therefore an id.
func SandboxGeocode(text string, center domain.Coordinates) domain.Place {
	seed := sandboxSeed(hashCode(text))
	rng := NewMulberry32(seed)

	// Explicit float64 conversions stop the compiler from fusing these into
	// FMA instructions, which would change the low bits on some platforms.
	latOffset := float64(rng.Next()*0.06) - 0.03
	lngOffset := float64(rng.Next()*0.10) - 0.05

	return domain.Place{
		ID:    "sandbox_" + strconv.FormatUint(uint64(seed), 10),
		Label: text + sandboxLabelSuffix,
		Lat:   center.Lat + latOffset,
		Lng:   center.Lng + lngOffset,
	}
}
