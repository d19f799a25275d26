// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"html/template"
	"strings"
	"time"
)

// ContactConfirmationData fills the acknowledgement sent to a visitor.
type ContactConfirmationData struct {
	FirmName string
	Name     string
	Subject  string
	Phone    string // firm phone for urgent matters
	Address  string
}

// ContactConfirmationEmail renders the visitor acknowledgement.
func ContactConfirmationEmail(data ContactConfirmationData) (subject, textBody, htmlBody string) {
	subject = "Thank you for contacting " + data.FirmName

	var t strings.Builder
	t.WriteString("Dear " + data.Name + ",\n\n")
	t.WriteString("Thank you for reaching out to us regarding \"" + data.Subject + "\".\n\n")
	t.WriteString("We have received your inquiry and our team will review it shortly. ")
	t.WriteString("One of our experts will get back to you within 24-48 business hours.\n\n")
	if data.Phone != "" {
		t.WriteString("If your matter is urgent, please call us directly at " + data.Phone + ".\n\n")
	}
	t.WriteString("Best Regards,\n" + data.FirmName + "\nChartered Accountants\n")
	if data.Address != "" {
		t.WriteString(data.Address + "\n")
	}
	t.WriteString("\nThis is an automated email. Please do not reply directly to this email.")

	var buf bytes.Buffer
	_ = confirmationTmpl.Execute(&buf, data)
	return subject, t.String(), buf.String()
}

// ContactNotificationData fills the alert sent to the firm's inbox.
type ContactNotificationData struct {
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
	SubmittedAt time.Time
	ContactID   string
}

// notificationZone is the firm's local time zone for SubmittedAt.
var notificationZone = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+1800)
}()

func (d ContactNotificationData) SubmittedAtLocal() string {
	return d.SubmittedAt.In(notificationZone).Format("02/01/2006, 3:04:05 pm")
}

func (d ContactNotificationData) PhoneOrDefault() string {
	if d.Phone == "" {
		return "Not provided"
	}
	return d.Phone
}

// ContactNotificationEmail renders the admin alert for a new submission.
func ContactNotificationEmail(data ContactNotificationData) (subject, textBody, htmlBody string) {
	subject = "New Contact Form Submission: " + data.Subject

	textBody = "Name: " + data.Name + "\n" +
		"Email: " + data.Email + "\n" +
		"Phone: " + data.PhoneOrDefault() + "\n" +
		"Subject: " + data.Subject + "\n" +
		"Submitted At: " + data.SubmittedAtLocal() + "\n" +
		"Reference: " + data.ContactID + "\n\n" +
		data.Message

	var buf bytes.Buffer
	_ = notificationTmpl.Execute(&buf, data)
	return subject, textBody, buf.String()
}

const layoutHead = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; line-height: 1.6; color: #333333; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
    <tr>
      <td align="center" style="padding: 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 600px; background-color: #f9fafb;">`

const layoutFoot = `
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

var confirmationTmpl = template.Must(template.New("contact_confirmation").Parse(layoutHead + `
          <tr>
            <td style="background-color: #1e3a8a; color: #ffffff; padding: 20px; text-align: center;">
              <h1 style="margin: 0;">{{.FirmName}}</h1>
              <p style="margin: 4px 0 0 0;">Chartered Accountants</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 20px;">
              <h2 style="margin-top: 0;">Dear {{.Name}},</h2>
              <p>Thank you for reaching out to us regarding "<strong>{{.Subject}}</strong>".</p>
              <p>We have received your inquiry and our team will review it shortly. One of our experts will get back to you within 24-48 business hours.</p>
              {{if .Phone}}<p>If your matter is urgent, please feel free to call us directly at <strong>{{.Phone}}</strong>.</p>{{end}}
              <p>Best Regards,<br><strong>{{.FirmName}}</strong><br>Chartered Accountants{{if .Address}}<br>{{.Address}}{{end}}{{if .Phone}}<br>Phone: {{.Phone}}{{end}}</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 20px; text-align: center; font-size: 12px; color: #666666;">
              This is an automated email. Please do not reply directly to this email.
            </td>
          </tr>` + layoutFoot))

type labeled struct {
	Label string
	Value string
}

var notificationTmpl = template.Must(template.New("contact_notification").Funcs(template.FuncMap{
	"field": func(label, value string) labeled { return labeled{Label: label, Value: value} },
}).Parse(layoutHead + `
          <tr>
            <td style="background-color: #1e3a8a; color: #ffffff; padding: 20px; text-align: center;">
              <h1 style="margin: 0;">New Contact Form Submission</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 20px;">
              {{template "field" (field "Name" .Name)}}
              {{template "field" (field "Email" .Email)}}
              {{template "field" (field "Phone" .PhoneOrDefault)}}
              {{template "field" (field "Subject" .Subject)}}
              {{template "field" (field "Message" .Message)}}
              {{template "field" (field "Submitted At" .SubmittedAtLocal)}}
              {{if .ContactID}}{{template "field" (field "Reference" .ContactID)}}{{end}}
            </td>
          </tr>` + layoutFoot + `
{{define "field"}}<div style="margin-bottom: 15px;">
  <div style="font-weight: bold; color: #1e3a8a;">{{.Label}}:</div>
  <div style="margin-top: 5px; padding: 10px; background-color: #ffffff; border-radius: 4px; white-space: pre-wrap;">{{.Value}}</div>
</div>{{end}}`))

