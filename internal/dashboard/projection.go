package dashboard

import (
	"sort"
	"strings"

	"github.com/lifewood/careers-api/internal/model"
)

// RowsPerPage is the fixed dashboard page size.
const RowsPerPage = 10

const FilterAll = "All"

type Query struct {
	Status        string // FilterAll or an exact status name
	Search        string
	SortField     string // "name", "email", "submitted_at", or a raw field
	SortDirection string // "asc" or "desc"
	Page          int    // 1-based
}

type View struct {
	Rows       []model.Application
	Filtered   int // matches before pagination
	TotalPages int
}

// Project derives what the dashboard renders from the cache and the UI
// controls. It is a pure function: the input slice is never mutated and
// identical inputs produce identical output. Order within equal sort keys
// is unspecified.
func Project(apps []model.Application, q Query) View {
	filtered := make([]model.Application, 0, len(apps))
	term := strings.ToLower(q.Search)
	for _, app := range apps {
		if q.Status != "" && q.Status != FilterAll && app.Status != q.Status {
			continue
		}
		if term != "" {
			name := strings.ToLower(app.FullName())
			email := strings.ToLower(app.Email)
			if !strings.Contains(name, term) && !strings.Contains(email, term) {
				continue
			}
		}
		filtered = append(filtered, app)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if q.SortDirection == "desc" {
			return compare(&filtered[j], &filtered[i], q.SortField)
		}
		return compare(&filtered[i], &filtered[j], q.SortField)
	})

	total := len(filtered)
	totalPages := (total + RowsPerPage - 1) / RowsPerPage

	page := q.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * RowsPerPage
	if start >= total {
		return View{Rows: []model.Application{}, Filtered: total, TotalPages: totalPages}
	}
	end := start + RowsPerPage
	if end > total {
		end = total
	}
	return View{Rows: filtered[start:end], Filtered: total, TotalPages: totalPages}
}

func compare(a, b *model.Application, field string) bool {
	switch field {
	case "name":
		return strings.ToLower(a.FullName()) < strings.ToLower(b.FullName())
	case "email":
		return strings.ToLower(a.Email) < strings.ToLower(b.Email)
	case "submitted_at", "":
		return a.SubmittedAt.Before(b.SubmittedAt)
	default:
		return rawField(a, field) < rawField(b, field)
	}
}

// rawField is the fallback comparator key for columns without a dedicated
// comparator. Unknown fields compare equal.
func rawField(a *model.Application, field string) string {
	switch field {
	case "status":
		return a.Status
	case "project":
		return a.Project
	case "degree":
		return a.Degree
	case "course":
		return a.Course
	case "first_name":
		return a.FirstName
	case "last_name":
		return a.LastName
	default:
		return ""
	}
}

// Counts tallies every status over the unfiltered cache so tab badges
// reflect global counts regardless of the active filter. The per-status
// counts always sum to the cache length.
func Counts(apps []model.Application) map[string]int {
	counts := make(map[string]int, len(model.Statuses))
	for _, s := range model.Statuses {
		counts[s] = 0
	}
	for _, app := range apps {
		counts[app.Status]++
	}
	return counts
}
