package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusReviewing = "reviewing"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// Statuses in display order for tabs and counts.
var Statuses = []string{StatusPending, StatusReviewing, StatusApproved, StatusRejected}

// OtherOption is the enum value that requires a free-text companion field.
const OtherOption = "Other"

var DegreeOptions = []string{
	"High School / GED", "Associate's Degree", "Bachelor's Degree",
	"Master's Degree", "Doctorate (PhD)", OtherOption,
}

var CourseOptions = []string{
	"Computer Science", "Data Science", "Artificial Intelligence", "Machine Learning",
	"Software Engineering", "Information Technology", "Mathematics", "Statistics",
	"Physics", "Engineering", "Business Administration", "Economics", OtherOption,
}

var ProjectOptions = []string{
	"AI Data Extraction", "Machine Learning Enablement", "Genealogy",
	"Natural Language Processing", "AI-Enabled Customer Service",
	"Computer Vision", "Autonomous Driving Technology",
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type Application struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FirstName         string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName          string    `gorm:"type:varchar(100)" json:"last_name"`
	Email             string    `gorm:"type:varchar(255);index" json:"email"`
	Age               int       `json:"age"`
	Degree            string    `gorm:"type:varchar(100)" json:"degree"`
	DegreeOther       string    `gorm:"type:varchar(255)" json:"degree_other"`
	Course            string    `gorm:"type:varchar(100)" json:"course"`
	CourseOther       string    `gorm:"type:varchar(255)" json:"course_other"`
	ExperienceYears   int       `json:"experience_years"`
	ExperienceDetails string    `gorm:"type:text" json:"experience_details"`
	Project           string    `gorm:"type:varchar(100)" json:"project"`
	Status            string    `gorm:"type:varchar(50);index" json:"status"`
	ResumeFilename    string    `gorm:"type:varchar(512)" json:"resume_filename"`
	SubmittedAt       time.Time `gorm:"index" json:"submitted_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (a *Application) TableName() string {
	return "applications"
}

// FullName is the concatenation the dashboard searches and sorts on.
func (a *Application) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// DegreeLabel prefers the free-text value when "Other" was picked.
func (a *Application) DegreeLabel() string {
	if a.DegreeOther != "" {
		return a.DegreeOther
	}
	return a.Degree
}

func (a *Application) CourseLabel() string {
	if a.CourseOther != "" {
		return a.CourseOther
	}
	return a.Course
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusReviewing, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func validOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}

// Validate checks every applicant-supplied field. The same rules gate the
// public form wizard and the admin edit form so both entry points produce
// records of identical quality. Returns a field -> message map, empty when
// the record is valid.
func (a *Application) Validate(requireResume bool) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(a.FirstName) == "" {
		errs["first_name"] = "First name is required."
	}
	if strings.TrimSpace(a.LastName) == "" {
		errs["last_name"] = "Last name is required."
	}
	if a.Email == "" {
		errs["email"] = "Email is required."
	} else if !emailPattern.MatchString(a.Email) {
		errs["email"] = "Email address is invalid."
	}
	if a.Age < 18 {
		errs["age"] = "You must be at least 18."
	}
	if strings.TrimSpace(a.Degree) == "" {
		errs["degree"] = "Degree is required."
	} else if !validOption(DegreeOptions, a.Degree) {
		errs["degree"] = "Unknown degree option."
	}
	if a.Degree == OtherOption && strings.TrimSpace(a.DegreeOther) == "" {
		errs["degree_other"] = "Please specify your degree."
	}
	if strings.TrimSpace(a.Course) == "" {
		errs["course"] = "Course is required."
	} else if !validOption(CourseOptions, a.Course) {
		errs["course"] = "Unknown course option."
	}
	if a.Course == OtherOption && strings.TrimSpace(a.CourseOther) == "" {
		errs["course_other"] = "Please specify your course."
	}
	if a.ExperienceYears < 0 {
		errs["experience_years"] = "Experience cannot be negative."
	}
	if strings.TrimSpace(a.ExperienceDetails) == "" {
		errs["experience_details"] = "Please describe your relevant experience."
	}
	if a.Project == "" {
		errs["project"] = "Please select a project."
	} else if !validOption(ProjectOptions, a.Project) {
		errs["project"] = "Unknown project track."
	}
	if requireResume && a.ResumeFilename == "" {
		errs["resume"] = "A resume file is required."
	}
	return errs
}

// Normalize clears the free-text companions when the enum is not "Other".
func (a *Application) Normalize() {
	if a.Degree != OtherOption {
		a.DegreeOther = ""
	}
	if a.Course != OtherOption {
		a.CourseOther = ""
	}
}
