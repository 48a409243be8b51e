package services

import (
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/metrics"
	"moving-presurvey-service/internal/ports"
)

const (
	sandboxStreetViewURL = "https://placehold.co/640x360?text=Street+View"
	sandboxSatelliteURL  = "https://placehold.co/320x180?text=Satellite"
)

type PropertyImageService struct {
	Directory ports.Directory
	// Live imagery; nil serves directory mocks and placeholders.
	Imagery ports.ImageryProvider
}

// ByAddress returns imagery for a directory address, live when configured
// and otherwise the address's own mock URLs.
func (s *PropertyImageService) ByAddress(id string) (domain.PropertyImage, error) {
	a, ok := s.Directory.Address(id)
	if !ok {
		return domain.PropertyImage{}, domain.ErrUnknownAddress
	}

	typeGuess := a.TypeGuess
	if s.Imagery != nil {
		return domain.PropertyImage{
			ImageURL:     s.Imagery.StreetViewURL(a.Coordinates()),
			SatelliteURL: s.Imagery.SatelliteURL(a.Coordinates()),
			TypeGuess:    &typeGuess,
			Source:       domain.SourceLive,
		}, nil
	}

	metrics.Fallbacks.WithLabelValues("property-image", domain.SourceMock).Inc()
	return domain.PropertyImage{
		ImageURL:     a.ImageURL,
		SatelliteURL: a.SatelliteURL,
		TypeGuess:    &typeGuess,
		Source:       domain.SourceMock,
	}, nil
}

// ByCoordinates never guesses a property type.
func (s *PropertyImageService) ByCoordinates(c domain.Coordinates) domain.PropertyImage {
	if s.Imagery != nil {
		return domain.PropertyImage{
			ImageURL:     s.Imagery.StreetViewURL(c),
			SatelliteURL: s.Imagery.SatelliteURL(c),
			Source:       domain.SourceLive,
		}
	}

	metrics.Fallbacks.WithLabelValues("property-image", domain.SourceSandbox).Inc()
	return domain.PropertyImage{
		ImageURL:     sandboxStreetViewURL,
		SatelliteURL: sandboxSatelliteURL,
		Source:       domain.SourceSandbox,
	}
}
