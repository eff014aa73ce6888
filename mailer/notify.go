package mailer

import (
	"bytes"
	"log"
	"text/template"

	"collegesphere/models"
)

var (
	organizerApprovedTmpl = template.Must(template.New("organizer_approved").Parse(
		`Hi {{.Name}},

Congratulations! Your organizer account on CollegeSphere has been approved.
You can now create and manage events for your college.

— The CollegeSphere Team
`))

	eventApprovedTmpl = template.Must(template.New("event_approved").Parse(
		`Hi {{.User.Name}},

Your event "{{.Event.Title}}" has been approved and is now visible to students.

  Venue:    {{.Event.Venue}}
  Date:     {{.Event.Date.Format "Jan 2, 2006 15:04"}}
  Deadline: {{.Event.Deadline.Format "Jan 2, 2006 15:04"}}

— The CollegeSphere Team
`))

	registrationConfirmedTmpl = template.Must(template.New("registration_confirmed").Parse(
		`Hi {{.User.Name}},

You are registered for "{{.Event.Title}}"{{if .College.Name}} at {{.College.Name}}{{end}}.

  Venue: {{.Event.Venue}}
  Date:  {{.Event.Date.Format "Jan 2, 2006 15:04"}}
{{- if .Registration.IsTeam}}

Team "{{.Registration.TeamName}}":
{{- range .Registration.Participants}}
  - {{.Name}} <{{.Email}}>
{{- end}}
{{- end}}

See you there!

— The CollegeSphere Team
`))
)

// Notifier renders and sends the transactional emails. Every send is
// best-effort: failures are logged and never reach the caller.
type Notifier struct {
	m Mailer
}

func NewNotifier(m Mailer) *Notifier { return &Notifier{m: m} }

func (n *Notifier) send(to, subject string, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("[mail] render %s: %v", tmpl.Name(), err)
		return
	}
	if err := n.m.Send(to, subject, buf.String()); err != nil {
		log.Printf("[mail] send %s to %s: %v", tmpl.Name(), to, err)
	}
}

func (n *Notifier) OrganizerApproved(u models.User) {
	n.send(u.Email, "Your organizer account is approved", organizerApprovedTmpl, u)
}

func (n *Notifier) EventApproved(u models.User, e models.Event) {
	n.send(u.Email, "Your event is live: "+e.Title, eventApprovedTmpl, struct {
		User  models.User
		Event models.Event
	}{u, e})
}

func (n *Notifier) RegistrationConfirmed(u models.User, e models.Event, c models.College, reg models.Registration) {
	n.send(u.Email, "Registration confirmed: "+e.Title, registrationConfirmedTmpl, struct {
		User         models.User
		Event        models.Event
		College      models.College
		Registration models.Registration
	}{u, e, c, reg})
}
