package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/spec-kit/internship-service/internal/domain"
)

const dateLayout = "02 January 2006"

// templateData is the view model shared by both letters.
type templateData struct {
	Name      string
	InternID  string
	Domain    string
	Phase     int
	StartDate string
	EndDate   string
}

var offerLetterTmpl = template.Must(template.New("offer").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222; max-width: 640px; margin: 0 auto;">
  <h2>Internship Offer Letter</h2>
  <p>Dear {{.Name}},</p>
  <p>Congratulations! You have been selected for the <strong>{{.Domain}}</strong>
  internship program, Phase {{.Phase}}.</p>
  <p>Your internship ID is <strong>{{.InternID}}</strong>. Keep it safe; it is
  required to verify your participation and to claim your certificate.</p>
  <p>Program period: <strong>{{.StartDate}}</strong> to <strong>{{.EndDate}}</strong>.</p>
  <p>We look forward to working with you.</p>
  <p>Best regards,<br/>The Internship Team</p>
</body>
</html>`))

var certificateTmpl = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222; max-width: 640px; margin: 0 auto;">
  <h2>Certificate of Completion</h2>
  <p>Dear {{.Name}},</p>
  <p>Congratulations on completing the <strong>{{.Domain}}</strong> internship
  program ({{.StartDate}} to {{.EndDate}}).</p>
  <p>This certifies that the holder of internship ID <strong>{{.InternID}}</strong>
  has successfully fulfilled the program requirements.</p>
  <p>Best regards,<br/>The Internship Team</p>
</body>
</html>`))

// RenderOfferLetter builds the offer letter message for an intern.
func RenderOfferLetter(intern *domain.Intern) (Message, error) {
	html, err := render(offerLetterTmpl, intern)
	if err != nil {
		return Message{}, err
	}
	return Message{
		ToName:  intern.Name,
		ToEmail: intern.Email,
		Subject: fmt.Sprintf("Internship Offer Letter - %s", intern.InternID),
		TextBody: fmt.Sprintf(
			"Dear %s,\n\nYou have been selected for the %s internship program (Phase %d).\nYour internship ID is %s.\nProgram period: %s to %s.\n\nBest regards,\nThe Internship Team\n",
			intern.Name, intern.Domain, intern.Phase, intern.InternID,
			formatDate(intern.StartDate), formatDate(intern.EndDate)),
		HTMLBody: html,
	}, nil
}

// RenderCertificate builds the completion certificate message for an intern.
func RenderCertificate(intern *domain.Intern) (Message, error) {
	html, err := render(certificateTmpl, intern)
	if err != nil {
		return Message{}, err
	}
	return Message{
		ToName:  intern.Name,
		ToEmail: intern.Email,
		Subject: fmt.Sprintf("Internship Completion Certificate - %s", intern.InternID),
		TextBody: fmt.Sprintf(
			"Dear %s,\n\nCongratulations on completing the %s internship program (%s to %s).\nInternship ID: %s.\n\nBest regards,\nThe Internship Team\n",
			intern.Name, intern.Domain,
			formatDate(intern.StartDate), formatDate(intern.EndDate), intern.InternID),
		HTMLBody: html,
	}, nil
}

func render(tmpl *template.Template, intern *domain.Intern) (string, error) {
	data := templateData{
		Name:      intern.Name,
		InternID:  intern.InternID,
		Domain:    intern.Domain,
		Phase:     intern.Phase,
		StartDate: formatDate(intern.StartDate),
		EndDate:   formatDate(intern.EndDate),
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}
	return buf.String(), nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
