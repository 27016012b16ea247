package policy

import "github.com/simagang/presensi-backend-go/internal/pkg/validator"

type UpdatePolicyRequest struct {
	WeekdayOpen  string  `json:"weekday_open"`
	WeekdayClose string  `json:"weekday_close"`
	FridayOpen   string  `json:"friday_open"`
	FridayClose  string  `json:"friday_close"`
	WindowOpen   string  `json:"window_open"`
	LateCutoff   string  `json:"late_cutoff"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
}

func (r UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors
	clocks := map[string]string{
		"weekday_open":  r.WeekdayOpen,
		"weekday_close": r.WeekdayClose,
		"friday_open":   r.FridayOpen,
		"friday_close":  r.FridayClose,
		"window_open":   r.WindowOpen,
		"late_cutoff":   r.LateCutoff,
	}
	for field, clock := range clocks {
		if !validator.IsValidClock(clock) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be HH:mm"})
		}
	}
	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PolicyResponse struct {
	WeekdayOpen  string  `json:"weekday_open"`
	WeekdayClose string  `json:"weekday_close"`
	FridayOpen   string  `json:"friday_open"`
	FridayClose  string  `json:"friday_close"`
	WindowOpen   string  `json:"window_open"`
	LateCutoff   string  `json:"late_cutoff"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	UpdatedAt    string  `json:"updated_at"`
}
