package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/tiyasha05/Dental-Art-api/internal/config"
	"github.com/tiyasha05/Dental-Art-api/internal/models"
	"github.com/tiyasha05/Dental-Art-api/internal/spreadsheet"
)

const (
	AppointmentSubject = "🦷 New Appointment Booking"
	ContactSubject     = "📬 New Contact Form Submission"
)

// Submitted values are untrusted; html/template escapes each one.
var (
	appointmentTmpl = template.Must(template.New("appointment").Parse(`
<h2>New Appointment</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Treatment:</strong> {{.Treatment}}</p>
<p><strong>Doctor:</strong> {{.Doctor}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
<p><strong>Time:</strong> {{.Time}}</p>
`))

	contactTmpl = template.Must(template.New("contact").Parse(`
<h3>New Contact Message</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Message:</strong><br/> {{.Message}}</p>
`))
)

// AppointmentNotification addresses a booking to staff with the workbook attached.
func AppointmentNotification(cfg config.EmailConfig, sub models.AppointmentSubmission, xlsx []byte) (models.Notification, error) {
	body, err := render(appointmentTmpl, sub)
	if err != nil {
		return models.Notification{}, err
	}

	return models.Notification{
		From:       cfg.AppointmentSender,
		To:         cfg.Recipient,
		Subject:    AppointmentSubject,
		HTML:       body,
		Attachment: spreadsheet.Attachment(xlsx),
	}, nil
}

// ContactNotification addresses a contact message to staff. It has no attachment.
func ContactNotification(cfg config.EmailConfig, sub models.ContactSubmission) (models.Notification, error) {
	body, err := render(contactTmpl, sub)
	if err != nil {
		return models.Notification{}, err
	}

	return models.Notification{
		From:    cfg.ContactSender,
		To:      cfg.Recipient,
		Subject: ContactSubject,
		HTML:    body,
	}, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
