package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lifewood/careers-api/internal/dto"
	"github.com/lifewood/careers-api/internal/model"
	"github.com/lifewood/careers-api/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	keys    []string
	lastCT  string
	failErr error
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, _ io.Reader) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.keys = append(f.keys, key)
	f.lastCT = contentType
	return nil
}

func (f *fakeUploader) Download(context.Context, string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUploader) PublicURL(key string) string { return "https://cdn.test/" + key }

type fakeCreator struct {
	reqs    []dto.CreateApplicationRequest
	id      uuid.UUID
	failErr error
}

func (f *fakeCreator) CreateApplication(_ context.Context, req dto.CreateApplicationRequest) (uuid.UUID, error) {
	if f.failErr != nil {
		return uuid.Nil, f.failErr
	}
	f.reqs = append(f.reqs, req)
	return f.id, nil
}

func completeForm() FormData {
	return FormData{
		FirstName:         "Alice",
		LastName:          "Reyes",
		Email:             "alice@example.com",
		Age:               27,
		Degree:            "Bachelor's Degree",
		Course:            "Computer Science",
		ExperienceYears:   4,
		ExperienceDetails: "Annotation and QA work on training datasets.",
		Project:           "Genealogy",
		Resume: &Resume{
			Name:        "resume.pdf",
			Size:        42_000,
			ContentType: "application/pdf",
			Data:        []byte("%PDF-1.4"),
		},
	}
}

func newTestWizard(t *testing.T) (*Wizard, *fakeUploader, *fakeCreator) {
	t.Helper()
	up := &fakeUploader{}
	cr := &fakeCreator{id: uuid.New()}
	w := New(up, cr)
	return w, up, cr
}

func advanceToReview(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.Equal(t, StepReview, w.Step())
}

func TestNextBlocksOnInvalidStep(t *testing.T) {
	w, _, _ := newTestWizard(t)

	data := completeForm()
	data.Email = "not-an-email"
	data.Age = 16
	require.NoError(t, w.SetData(data))

	err := w.Next()
	var formErr *util.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, "Email address is invalid.", formErr.Errors["email"])
	assert.Equal(t, "You must be at least 18.", formErr.Errors["age"])
	assert.Equal(t, StepPersonal, w.Step(), "invalid data must not advance the step")
}

func TestNextScopesErrorsToCurrentStep(t *testing.T) {
	w, _, _ := newTestWizard(t)

	data := completeForm()
	data.Project = "" // belongs to a later step
	require.NoError(t, w.SetData(data))

	require.NoError(t, w.Next(), "a later step's gap must not block this one")
	assert.Equal(t, StepBackground, w.Step())
}

func TestOtherRequiresFreeText(t *testing.T) {
	w, _, _ := newTestWizard(t)

	data := completeForm()
	data.Degree = model.OtherOption
	data.DegreeOther = ""
	require.NoError(t, w.SetData(data))
	require.NoError(t, w.Next())

	err := w.Next()
	var formErr *util.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, "Please specify your degree.", formErr.Errors["degree_other"])

	data.DegreeOther = "Bootcamp Certificate"
	require.NoError(t, w.SetData(data))
	assert.NoError(t, w.Next())
}

func TestBackNavigatesFreely(t *testing.T) {
	w, _, _ := newTestWizard(t)
	require.NoError(t, w.SetData(completeForm()))
	require.NoError(t, w.Next())

	require.NoError(t, w.Back())
	assert.Equal(t, StepPersonal, w.Step())

	// Back at the first step is a no-op.
	require.NoError(t, w.Back())
	assert.Equal(t, StepPersonal, w.Step())
}

func TestSetDataRejectsOversizedResume(t *testing.T) {
	w, _, _ := newTestWizard(t)

	data := completeForm()
	data.Resume.Size = maxResumeSize + 1
	err := w.SetData(data)
	var formErr *util.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Contains(t, formErr.Errors["resume"], "too large")
}

func TestSubmitOnlyFromReview(t *testing.T) {
	w, _, _ := newTestWizard(t)
	require.NoError(t, w.SetData(completeForm()))

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotOnReview)
}

func TestSubmitUploadsAndCreates(t *testing.T) {
	w, up, cr := newTestWizard(t)
	submittedAt := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	w.now = func() time.Time { return submittedAt }

	require.NoError(t, w.SetData(completeForm()))
	advanceToReview(t, w)

	id, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cr.id, id)
	assert.True(t, w.Submitted())

	wantKey := fmt.Sprintf("alice@example.com/%d_resume.pdf", submittedAt.UnixMilli())
	require.Len(t, up.keys, 1)
	assert.Equal(t, wantKey, up.keys[0])
	assert.Equal(t, "application/pdf", up.lastCT)

	require.Len(t, cr.reqs, 1)
	assert.Equal(t, wantKey, cr.reqs[0].ResumeFilename)
	assert.Equal(t, "Alice", cr.reqs[0].FirstName)
}

func TestSubmitFailsClosedOnUploadError(t *testing.T) {
	w, up, cr := newTestWizard(t)
	up.failErr = errors.New("bucket unavailable")

	require.NoError(t, w.SetData(completeForm()))
	advanceToReview(t, w)

	_, err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Empty(t, cr.reqs, "no record may be created without its resume")
	assert.False(t, w.Submitted())
}

func TestSubmitTwiceRejected(t *testing.T) {
	w, _, _ := newTestWizard(t)
	require.NoError(t, w.SetData(completeForm()))
	advanceToReview(t, w)

	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.ErrorIs(t, w.Next(), ErrAlreadySubmitted)
}

func TestResetClearsEverything(t *testing.T) {
	w, _, _ := newTestWizard(t)
	require.NoError(t, w.SetData(completeForm()))
	advanceToReview(t, w)
	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	w.Reset()
	assert.Equal(t, StepPersonal, w.Step())
	assert.False(t, w.Submitted())
	assert.Empty(t, w.Data().FirstName)
}
