package leave

import (
	"io"
	"mime/multipart"

	"github.com/simagang/presensi-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Reason string `json:"reason"`

	// Optional proof attachment, set by the handler from the multipart form.
	File       io.Reader             `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	ID       string `json:"-"`
	Decision string `json:"decision"` // APPROVED or REJECTED
}

func (r DecideRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.Decision != StatusApproved && r.Decision != StatusRejected {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "must be APPROVED or REJECTED"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	Status string // empty means all
	UserID string
	Page   int
	Limit  int
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	UserName      *string `json:"user_name,omitempty"`
	Date          string  `json:"date"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	DecidedBy     *string `json:"decided_by,omitempty"`
	SubmittedAt   string  `json:"submitted_at"`
}

type ListLeaveRequestsResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	Requests   []LeaveRequestResponse `json:"requests"`
}
