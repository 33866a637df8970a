// adminctl is a terminal admin dashboard: it authenticates against the
// careers API, loads the application list through the same status engine
// the web dashboard uses, prints the projected view, and can export the
// filtered set as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/lifewood/careers-api/internal/dashboard"
	"github.com/lifewood/careers-api/internal/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		baseURL   = flag.String("api", envOr("CAREERS_API_URL", "http://localhost:3000"), "careers API base URL")
		email     = flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
		password  = flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
		status    = flag.String("status", dashboard.FilterAll, "status filter (All, pending, reviewing, approved, rejected)")
		search    = flag.String("search", "", "search term (name or email)")
		sortField = flag.String("sort", "submitted_at", "sort field (name, email, submitted_at)")
		sortDir   = flag.String("dir", "desc", "sort direction (asc, desc)")
		page      = flag.Int("page", 1, "page number")
		export    = flag.String("export", "", "write the filtered set to this CSV file and exit")
		watch     = flag.Duration("watch", 0, "keep polling and reprinting for this long (0 = one shot)")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal().Msg("email and password are required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}

	ctx := context.Background()
	client := dashboard.NewAPIClient(*baseURL)

	admin, err := client.Login(ctx, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}
	session := dashboard.NewSession(dashboard.NewMemorySessionStore())
	session.Init(admin)
	session.StartSweep()
	defer session.StopSweep()
	log.Info().Str("admin", admin.Email).Msg("logged in")

	notifier := dashboard.NewNotifier(func(n dashboard.Notification) {
		if n.Level == dashboard.LevelError {
			log.Error().Msg(n.Message)
			return
		}
		log.Info().Msg(n.Message)
	})
	engine := dashboard.NewEngine(client, notifier, log.Logger)

	if err := engine.Refresh(ctx, false); err != nil {
		os.Exit(1)
	}

	query := dashboard.Query{
		Status:        *status,
		Search:        *search,
		SortField:     *sortField,
		SortDirection: *sortDir,
		Page:          *page,
	}

	if *export != "" {
		f, err := os.Create(*export)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot create export file")
		}
		defer f.Close()
		// Export covers the whole filtered set, not just one page.
		filtered := collectFiltered(engine.Applications(), query)
		if err := dashboard.ExportCSV(f, filtered); err != nil {
			log.Fatal().Err(err).Msg("export failed")
		}
		log.Info().Str("file", *export).Int("rows", len(filtered)).Msg("exported")
		return
	}

	printView(engine, query)

	if *watch > 0 {
		poller := dashboard.NewPoller(engine, 5*time.Second)
		poller.Start(ctx)
		deadline := time.After(*watch)
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				session.Touch()
				printView(engine, query)
			case <-deadline:
				poller.Stop()
				engine.Wait()
				return
			}
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// collectFiltered walks every page of the projection so the export covers
// the full filtered set.
func collectFiltered(apps []model.Application, q dashboard.Query) []model.Application {
	var out []model.Application
	for p := 1; ; p++ {
		q.Page = p
		view := dashboard.Project(apps, q)
		if len(view.Rows) == 0 {
			break
		}
		out = append(out, view.Rows...)
	}
	return out
}

func printView(engine *dashboard.Engine, q dashboard.Query) {
	apps := engine.Applications()
	view := dashboard.Project(apps, q)
	counts := dashboard.Counts(apps)

	fmt.Printf("total %d | pending %d | reviewing %d | approved %d | rejected %d\n",
		len(apps), counts["pending"], counts["reviewing"], counts["approved"], counts["rejected"])

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tPROJECT\tSTATUS\tSUBMITTED")
	for _, app := range view.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			app.FullName(), app.Email, app.Project, app.Status,
			app.SubmittedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	fmt.Printf("page %d of %d (%d matching)\n", q.Page, view.TotalPages, view.Filtered)
}
