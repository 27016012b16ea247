package evaluation

import "github.com/simagang/presensi-backend-go/internal/pkg/validator"

type UpsertRequest struct {
	WorkSummary string `json:"work_summary"`
	Reflection  string `json:"reflection"`
}

func (r UpsertRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.WorkSummary) {
		errs = append(errs, validator.ValidationError{Field: "work_summary", Message: "is required"})
	}
	if validator.IsEmpty(r.Reflection) {
		errs = append(errs, validator.ValidationError{Field: "reflection", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GradeRequest struct {
	ID            string  `json:"-"`
	Discipline    float64 `json:"discipline"`
	Initiative    float64 `json:"initiative"`
	Teamwork      float64 `json:"teamwork"`
	Technical     float64 `json:"technical"`
	Communication float64 `json:"communication"`
}

func (r GradeRequest) Validate() error {
	var errs validator.ValidationErrors
	scores := map[string]float64{
		"discipline":    r.Discipline,
		"initiative":    r.Initiative,
		"teamwork":      r.Teamwork,
		"technical":     r.Technical,
		"communication": r.Communication,
	}
	for field, score := range scores {
		if !validator.IsValidScore(score) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be between 0 and 100"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Average returns the mean of the five sub-scores.
func (r GradeRequest) Average() float64 {
	return (r.Discipline + r.Initiative + r.Teamwork + r.Technical + r.Communication) / 5
}

type EvaluationResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserName    *string `json:"user_name,omitempty"`
	WorkSummary string  `json:"work_summary"`
	Reflection  string  `json:"reflection"`

	Discipline    *float64 `json:"discipline,omitempty"`
	Initiative    *float64 `json:"initiative,omitempty"`
	Teamwork      *float64 `json:"teamwork,omitempty"`
	Technical     *float64 `json:"technical,omitempty"`
	Communication *float64 `json:"communication,omitempty"`
	AverageScore  *float64 `json:"average_score,omitempty"`

	Status   string  `json:"status"`
	GradedBy *string `json:"graded_by,omitempty"`
}

type ListEvaluationsResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Evaluations []EvaluationResponse `json:"evaluations"`
}
