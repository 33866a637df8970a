package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/lifewood/careers-api/internal/config"
	"github.com/lifewood/careers-api/internal/model"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

type MailServiceInterface interface {
	SendReceived(app *model.Application)
	SendDecision(app *model.Application)
}

// MailService sends applicant-facing email over SMTP. Every send is
// fire-and-forget: failures are logged and never surfaced to the caller,
// and a missing SMTP configuration just skips sending.
type MailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailService() *MailService {
	cfg := config.LoadMailConfig()
	if cfg.Host == "" || cfg.User == "" {
		log.Warn().Msg("smtp credentials not set; email sending disabled")
		return &MailService{}
	}
	return &MailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   fmt.Sprintf("Lifewood Data Technology <%s>", cfg.From),
	}
}

func (s *MailService) SendReceived(app *model.Application) {
	body, err := renderReceivedEmail(app)
	if err != nil {
		log.Error().Err(err).Msg("render received email")
		return
	}
	s.send(app.Email, "We received your application", body)
}

func (s *MailService) SendDecision(app *model.Application) {
	subject := "Application update"
	if app.Status == model.StatusApproved {
		subject = "Your application is approved"
	}
	body, err := renderDecisionEmail(app)
	if err != nil {
		log.Error().Err(err).Msg("render decision email")
		return
	}
	s.send(app.Email, subject, body)
}

func (s *MailService) send(to, subject, html string) {
	if s.dialer == nil {
		log.Warn().Str("to", to).Str("subject", subject).Msg("email skipped, smtp disabled")
		return
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("email send failed")
		return
	}
	log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
}

const (
	brandDark  = "#133020"
	brandGreen = "#046241"
)

var emailFrame = template.Must(template.New("frame").Parse(`
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background:#ffffff;">
  <tr><td align="center">
    <table role="presentation" width="760" cellpadding="0" cellspacing="0" style="width:760px;max-width:100%;background:#ffffff;">
      <tr><td style="padding:24px 24px 10px 24px;font-family:system-ui,Segoe UI,Roboto,Arial,sans-serif;color:{{.Dark}};">
        <h1 style="margin:0 0 10px 0;font-size:24px;line-height:1.35;">{{.Title}}</h1>
      </td></tr>
      <tr><td style="padding:2px 24px 24px 24px;font-family:system-ui,Segoe UI,Roboto,Arial,sans-serif;color:{{.Dark}};font-size:14px;line-height:1.6;">
        {{.Body}}
      </td></tr>
      <tr><td style="padding:8px 24px 16px 24px;border-top:1px solid #e5e7eb;text-align:center;color:#6b7280;font-family:system-ui,Segoe UI,Roboto,Arial,sans-serif;font-size:12px;">
        &copy; {{.Year}} Lifewood Data Technology{{if .SiteURL}} &middot; <a href="{{.SiteURL}}" style="color:#6b7280;">{{.SiteURL}}</a>{{end}}
      </td></tr>
    </table>
  </td></tr>
</table>`))

var receivedBody = template.Must(template.New("received").Parse(`
<p>Hello {{.FirstName}},</p>
<p>Thank you for applying to <strong>Lifewood</strong>{{if .Project}} for the <strong>{{.Project}}</strong> project{{end}}. Your application was submitted successfully and is now awaiting review by our recruitment team.</p>
<p>Here is what happens next:</p>
<ol>
  <li><strong>Initial screening</strong>: we verify your details and match them against the role requirements.</li>
  <li><strong>Shortlisting</strong>: if your profile aligns, we will invite you to the next step (assessment or interview).</li>
  <li><strong>Decision</strong>: we will notify you by email either way. This typically takes 3 to 7 business days.</li>
</ol>
<p>If we need more information, we will reach out using this email address. You can reply to this message at any time to share updates.</p>
<p style="color:{{.Green}};">Best regards,<br/><strong>Lifewood Recruitment</strong></p>`))

var approvedBody = template.Must(template.New("approved").Parse(`
<p>Hello {{.FirstName}},</p>
<p>Great news! Your application{{if .Project}} for <strong>{{.Project}}</strong>{{end}} has been <strong>approved</strong>.</p>
<p>Our coordinator will reach out shortly with scheduling options and any documents we need from you. Please watch your inbox (and spam) over the next 1 to 3 business days.</p>
<p>If anything changes on your side, feel free to reply to this email so we can accommodate your availability.</p>
<p style="color:{{.Green}};">Best regards,<br/><strong>Lifewood Recruitment</strong></p>`))

var rejectedBody = template.Must(template.New("rejected").Parse(`
<p>Hello {{.FirstName}},</p>
<p>Thank you for your interest in Lifewood{{if .Project}} and the <strong>{{.Project}}</strong> project{{end}}. After a thorough review, we will not be moving forward at this time.</p>
<p>This decision doesn't reflect on your potential. Roles open frequently, and your experience may be a strong match for future opportunities. We encourage you to apply again when a suitable role appears.</p>
<p>If you'd like basic feedback on your application, you can reply to this email and our team will do our best to share helpful pointers.</p>
<p style="color:{{.Green}};">Best regards,<br/><strong>Lifewood Recruitment</strong></p>`))

type emailData struct {
	FirstName string
	Project   string
	Green     string
}

func renderReceivedEmail(app *model.Application) (string, error) {
	return renderEmail("We received your application", receivedBody, app)
}

func renderDecisionEmail(app *model.Application) (string, error) {
	title := "Update on your application"
	body := rejectedBody
	if app.Status == model.StatusApproved {
		title = "Your application was approved"
		body = approvedBody
	}
	return renderEmail(title, body, app)
}

func renderEmail(title string, body *template.Template, app *model.Application) (string, error) {
	var inner bytes.Buffer
	data := emailData{FirstName: app.FirstName, Project: app.Project, Green: brandGreen}
	if err := body.Execute(&inner, data); err != nil {
		return "", err
	}
	var out bytes.Buffer
	err := emailFrame.Execute(&out, struct {
		Title   string
		Body    template.HTML
		Dark    string
		Year    int
		SiteURL string
	}{title, template.HTML(inner.String()), brandDark, time.Now().Year(), config.LoadAppConfig().BaseURL})
	return out.String(), err
}
