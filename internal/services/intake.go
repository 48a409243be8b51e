package services

import (
	"context"
	"errors"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/metrics"
	"moving-presurvey-service/internal/ports"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	IntakeModeIDs         = "mock_ids"
	IntakeModeSandboxText = "sandbox_text"
	IntakeModeLiveText    = "live_text"

	liveOriginID = "live_origin"
	liveDestID   = "live_dest"
)

// IntakeRequest selects the job's origin (depot) and destination (customer)
// either by directory id or by free text. Ids win when both pairs are given.
type IntakeRequest struct {
	CustomerAddressID   string
	DepotID             string
	CustomerAddressText string
	DepotAddressText    string
}

// Dest carries imagery fields only when it came from the directory.
type IntakeResult struct {
	Origin domain.Place
	Dest   domain.Address
	Mode   string
}

type IntakeService struct {
	Directory ports.Directory
	// Live geocoder; nil selects sandbox geocoding.
	Geocoder ports.Geocoder
}

func (s *IntakeService) Resolve(ctx context.Context, req IntakeRequest) (IntakeResult, error) {
	depotID := strings.TrimSpace(req.DepotID)
	customerID := strings.TrimSpace(req.CustomerAddressID)
	if depotID != "" && customerID != "" {
		return s.resolveIDs(depotID, customerID)
	}

	if strings.TrimSpace(req.DepotAddressText) != "" && strings.TrimSpace(req.CustomerAddressText) != "" {
		if s.Geocoder == nil {
			metrics.Fallbacks.WithLabelValues("intake", domain.SourceSandbox).Inc()
			return IntakeResult{
				Origin: SandboxGeocode(req.DepotAddressText, SandboxDepotCenter),
				Dest:   domain.Address{Place: SandboxGeocode(req.CustomerAddressText, SandboxCustomerCenter)},
				Mode:   IntakeModeSandboxText,
			}, nil
		}
		return s.resolveLive(ctx, req.DepotAddressText, req.CustomerAddressText)
	}

	return IntakeResult{}, domain.ErrInvalidPayload
}

func (s *IntakeService) resolveIDs(depotID, customerID string) (IntakeResult, error) {
	origin, ok := s.Directory.Depot(depotID)
	if !ok {
		return IntakeResult{}, domain.ErrUnknownOriginDest
	}
	dest, ok := s.Directory.Address(customerID)
	if !ok {
		return IntakeResult{}, domain.ErrUnknownOriginDest
	}
	return IntakeResult{Origin: origin, Dest: dest, Mode: IntakeModeIDs}, nil
}

// resolveLive geocodes both texts in parallel. Both lookups always run to
// completion so the error hint can report each side's status.
func (s *IntakeService) resolveLive(ctx context.Context, depotText, customerText string) (IntakeResult, error) {
	var (
		origin, dest       domain.Place
		originErr, destErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		origin, originErr = s.Geocoder.Geocode(ctx, depotText)
		return nil
	})
	g.Go(func() error {
		dest, destErr = s.Geocoder.Geocode(ctx, customerText)
		return nil
	})
	_ = g.Wait()

	if originErr != nil || destErr != nil {
		return IntakeResult{}, &domain.UpstreamError{
			Code:     "geocode_failed",
			Provider: "google",
			Hint:     "origin=" + statusHint(originErr) + " dest=" + statusHint(destErr),
			Err:      errors.Join(originErr, destErr),
		}
	}

	origin.ID = liveOriginID
	dest.ID = liveDestID
	return IntakeResult{Origin: origin, Dest: domain.Address{Place: dest}, Mode: IntakeModeLiveText}, nil
}

// statusHint renders the provider status for one side of a lookup.
// Transport errors are not echoed since their text may contain credentials.
func statusHint(err error) string {
	if err == nil {
		return "OK"
	}
	var se *domain.StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	return "UPSTREAM_ERROR"
}
