package dashboard

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/lifewood/careers-api/internal/model"
)

var exportHeader = []string{
	"ID", "FirstName", "LastName", "Email", "Age", "Degree", "Course",
	"ExperienceYears", "ExperienceDetails", "Project", "Status", "SubmittedAt",
}

// ExportCSV writes the given applications as a spreadsheet snapshot.
// Callers pass the filtered (not paginated) projection. Degree and course
// columns prefer the free-text value when "Other" was picked.
func ExportCSV(w io.Writer, apps []model.Application) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, app := range apps {
		row := []string{
			app.ID.String(),
			app.FirstName,
			app.LastName,
			app.Email,
			strconv.Itoa(app.Age),
			app.DegreeLabel(),
			app.CourseLabel(),
			strconv.Itoa(app.ExperienceYears),
			app.ExperienceDetails,
			app.Project,
			app.Status,
			app.SubmittedAt.Format("2006-01-02 15:04"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
