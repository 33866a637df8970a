package dto

import (
	"github.com/google/uuid"
)

// CreateApplicationRequest is the public submission payload. Status and
// timestamps are server-assigned; status is always forced to "pending".
type CreateApplicationRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Age               int    `json:"age"`
	Degree            string `json:"degree"`
	DegreeOther       string `json:"degree_other"`
	Course            string `json:"course"`
	CourseOther       string `json:"course_other"`
	ExperienceYears   int    `json:"experience_years"`
	ExperienceDetails string `json:"experience_details"`
	Project           string `json:"project"`
	ResumeFilename    string `json:"resume_filename"`
}

// UpdateApplicationRequest carries a partial update from the admin edit
// form or a status-transition action. Pointer fields distinguish "absent"
// from the zero value so a status-only PUT does not blank the record.
type UpdateApplicationRequest struct {
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Email             *string `json:"email,omitempty"`
	Age               *int    `json:"age,omitempty"`
	Degree            *string `json:"degree,omitempty"`
	DegreeOther       *string `json:"degree_other,omitempty"`
	Course            *string `json:"course,omitempty"`
	CourseOther       *string `json:"course_other,omitempty"`
	ExperienceYears   *int    `json:"experience_years,omitempty"`
	ExperienceDetails *string `json:"experience_details,omitempty"`
	Project           *string `json:"project,omitempty"`
	Status            *string `json:"status,omitempty"`
	ResumeFilename    *string `json:"resume_filename,omitempty"`
}

type CreateApplicationResponse struct {
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	ApplicationID uuid.UUID `json:"applicationId"`
}

type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
