package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Ayu2427/Personal-doctor/internal/domain/entities"
	"github.com/Ayu2427/Personal-doctor/internal/domain/providers"
	"github.com/Ayu2427/Personal-doctor/internal/domain/repositories"
	"github.com/Ayu2427/Personal-doctor/internal/infrastructure/observability"
	apperrors "github.com/Ayu2427/Personal-doctor/pkg/errors"
)

const (
	// UnknownDiagnosis is the sentinel returned when no pattern
	// contains the query. Not an error condition.
	UnknownDiagnosis = "Unknown"

	// UnknownMedicine accompanies the unknown diagnosis
	UnknownMedicine = "Not available"

	disclaimerMatched = "⚠️ Demo only. Consult a doctor."
	disclaimerUnknown = "⚠️ Couldn’t match symptoms. Consult a real doctor."
)

// DiagnosisService matches free-text symptoms against the condition
// catalog and resolves nearby facilities for the response envelope.
type DiagnosisService struct {
	conditions      repositories.ConditionRepository
	geocoder        providers.GeocodingProvider
	defaultLocation string
	facilityLimit   int
	metrics         *observability.Metrics
}

// NewDiagnosisService creates a new diagnosis service
func NewDiagnosisService(
	conditions repositories.ConditionRepository,
	geocoder providers.GeocodingProvider,
	defaultLocation string,
	facilityLimit int,
) *DiagnosisService {
	return &DiagnosisService{
		conditions:      conditions,
		geocoder:        geocoder,
		defaultLocation: defaultLocation,
		facilityLimit:   facilityLimit,
	}
}

// SetMetrics attaches optional metrics
func (s *DiagnosisService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Diagnose runs the symptom matcher and the location resolver and
// combines both into a single response envelope. Resolver failures are
// absorbed into the fallback facility list; only catalog store faults
// surface as errors.
func (s *DiagnosisService) Diagnose(ctx context.Context, message, location string) (*entities.Diagnosis, error) {
	normalized := strings.ToLower(strings.TrimSpace(message))

	if strings.TrimSpace(location) == "" {
		location = s.defaultLocation
	}

	hospitals := s.nearbyHospitals(ctx, location)

	record, err := s.conditions.Match(ctx, normalized)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return &entities.Diagnosis{
				Diagnosis:       UnknownDiagnosis,
				Medicine:        UnknownMedicine,
				Disclaimer:      disclaimerUnknown,
				NearbyHospitals: hospitals,
			}, nil
		}
		return nil, err
	}

	return &entities.Diagnosis{
		Diagnosis:       record.ConditionName,
		Medicine:        record.Medicines,
		Disclaimer:      disclaimerMatched,
		NearbyHospitals: hospitals,
	}, nil
}

// nearbyHospitals resolves facility candidates for the location. On a
// provider failure it returns the fixed fallback list; a successful
// lookup with zero candidates returns an empty list, no fallback.
func (s *DiagnosisService) nearbyHospitals(ctx context.Context, location string) []entities.Facility {
	query := fmt.Sprintf("hospitals near %s", location)

	places, err := s.geocoder.Search(ctx, query, s.facilityLimit)
	if err != nil {
		log.Warn().
			Str("location", location).
			Err(err).
			Msg("geocoding lookup failed, using fallback facilities")
		observability.RecordGeocodeFailure(ctx, s.metrics)
		return fallbackFacilities(location)
	}

	hospitals := make([]entities.Facility, 0, len(places))
	for _, place := range places {
		hospitals = append(hospitals, entities.Facility{
			Name:    facilityName(place.DisplayName),
			Address: place.DisplayName,
			Rating:  "N/A",
		})
	}
	return hospitals
}

// facilityName is the first comma-delimited segment of the address
func facilityName(displayName string) string {
	name, _, _ := strings.Cut(displayName, ",")
	return strings.TrimSpace(name)
}

func fallbackFacilities(location string) []entities.Facility {
	return []entities.Facility{
		{Name: "City General Hospital", Address: fmt.Sprintf("Default Hospital near %s", location), Rating: "N/A"},
		{Name: "Community Health Clinic", Address: fmt.Sprintf("Demo Clinic near %s", location), Rating: "N/A"},
	}
}
