// Package wizard implements the multi-step job-application form: four
// fixed steps with per-step validation gating forward navigation, and a
// final submit that uploads the resume and creates the record. The field
// rules are the shared model rules, so the public form and the admin edit
// form cannot drift apart.
package wizard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lifewood/careers-api/internal/dto"
	"github.com/lifewood/careers-api/internal/model"
	"github.com/lifewood/careers-api/internal/service"
	"github.com/lifewood/careers-api/internal/util"
)

type Step int

const (
	StepPersonal Step = iota + 1
	StepBackground
	StepDetails
	StepReview
)

const maxResumeSize = 10 * 1024 * 1024

var (
	ErrAlreadySubmitted = errors.New("application already submitted")
	ErrNotOnReview      = errors.New("not on the review step")
)

// Resume is the attached file, validated by name and size only.
type Resume struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

type FormData struct {
	FirstName         string
	LastName          string
	Email             string
	Age               int
	Degree            string
	DegreeOther       string
	Course            string
	CourseOther       string
	ExperienceYears   int
	ExperienceDetails string
	Project           string
	Resume            *Resume
}

// Creator is the slice of the remote store the wizard submits through.
type Creator interface {
	CreateApplication(ctx context.Context, req dto.CreateApplicationRequest) (uuid.UUID, error)
}

type Wizard struct {
	step      Step
	data      FormData
	submitted bool

	uploader service.StorageServiceInterface
	creator  Creator
	now      func() time.Time
}

func New(uploader service.StorageServiceInterface, creator Creator) *Wizard {
	return &Wizard{
		step:     StepPersonal,
		uploader: uploader,
		creator:  creator,
		now:      time.Now,
	}
}

func (w *Wizard) Step() Step      { return w.step }
func (w *Wizard) Data() FormData  { return w.data }
func (w *Wizard) Submitted() bool { return w.submitted }

func (w *Wizard) SetData(data FormData) error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	if data.Resume != nil && data.Resume.Size > maxResumeSize {
		return util.NewFormError("Invalid resume", map[string]string{
			"resume": "Resume file is too large (max 10MB).",
		})
	}
	w.data = data
	return nil
}

// Next validates the current step and advances. Validation failures block
// forward navigation and come back as a FormError scoped to this step's
// fields.
func (w *Wizard) Next() error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	if errs := w.validateStep(w.step); len(errs) > 0 {
		return util.NewFormError("Please fix the highlighted fields", errs)
	}
	if w.step < StepReview {
		w.step++
	}
	return nil
}

// Back is always allowed until the form has been submitted.
func (w *Wizard) Back() error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	if w.step > StepPersonal {
		w.step--
	}
	return nil
}

// Submit validates everything, uploads the resume under a key namespaced
// by email and submission time, then creates the record. The server
// forces status to pending.
func (w *Wizard) Submit(ctx context.Context) (uuid.UUID, error) {
	if w.submitted {
		return uuid.Nil, ErrAlreadySubmitted
	}
	if w.step != StepReview {
		return uuid.Nil, ErrNotOnReview
	}
	for s := StepPersonal; s <= StepDetails; s++ {
		if errs := w.validateStep(s); len(errs) > 0 {
			return uuid.Nil, util.NewFormError("Please ensure all fields are filled correctly before submitting.", errs)
		}
	}

	key := service.ResumeKey(w.data.Email, w.data.Resume.Name, w.now())
	if err := w.uploader.Upload(ctx, key, w.data.Resume.ContentType, bytes.NewReader(w.data.Resume.Data)); err != nil {
		return uuid.Nil, fmt.Errorf("resume upload failed: %w", err)
	}

	id, err := w.creator.CreateApplication(ctx, dto.CreateApplicationRequest{
		FirstName:         w.data.FirstName,
		LastName:          w.data.LastName,
		Email:             w.data.Email,
		Age:               w.data.Age,
		Degree:            w.data.Degree,
		DegreeOther:       w.data.DegreeOther,
		Course:            w.data.Course,
		CourseOther:       w.data.CourseOther,
		ExperienceYears:   w.data.ExperienceYears,
		ExperienceDetails: w.data.ExperienceDetails,
		Project:           w.data.Project,
		ResumeFilename:    key,
	})
	if err != nil {
		return uuid.Nil, err
	}
	w.submitted = true
	return id, nil
}

// Reset clears the form back to the first step for a fresh application.
func (w *Wizard) Reset() {
	w.step = StepPersonal
	w.data = FormData{}
	w.submitted = false
}

var stepFields = map[Step][]string{
	StepPersonal:   {"first_name", "last_name", "email", "age"},
	StepBackground: {"degree", "degree_other", "course", "course_other", "experience_years", "experience_details"},
	StepDetails:    {"project", "resume"},
}

func (w *Wizard) validateStep(step Step) map[string]string {
	app := model.Application{
		FirstName:         w.data.FirstName,
		LastName:          w.data.LastName,
		Email:             w.data.Email,
		Age:               w.data.Age,
		Degree:            w.data.Degree,
		DegreeOther:       w.data.DegreeOther,
		Course:            w.data.Course,
		CourseOther:       w.data.CourseOther,
		ExperienceYears:   w.data.ExperienceYears,
		ExperienceDetails: w.data.ExperienceDetails,
		Project:           w.data.Project,
	}
	if w.data.Resume != nil {
		app.ResumeFilename = w.data.Resume.Name
	}
	all := app.Validate(true)

	errs := map[string]string{}
	for _, field := range stepFields[step] {
		if msg, ok := all[field]; ok {
			errs[field] = msg
		}
	}
	return errs
}
