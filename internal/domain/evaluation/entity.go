package evaluation

import "time"

// Evaluation statuses. Part of the persisted contract.
const (
	StatusPending = "PENDING"
	StatusGraded  = "GRADED"
)

// FinalEvaluation is the one row per intern covering the end-of-internship
// write-up and its grading. Sub-scores are set exactly once, when an admin
// grades; the intern may keep editing the write-up while PENDING.
type FinalEvaluation struct {
	ID          string
	UserID      string
	WorkSummary string
	Reflection  string

	Discipline    *float64
	Initiative    *float64
	Teamwork      *float64
	Technical     *float64
	Communication *float64
	AverageScore  *float64

	Status   string
	GradedBy *string
	GradedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	UserName *string
}
