package mail

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     "nao-responda@yuxdigital.com.br",
	}
}

func (s *EmailSender) SendLeadAssigned(to, toName, leadName, leadEmail, source string) error {
	data := LeadAssignedData{
		Name:      toName,
		LeadName:  leadName,
		LeadEmail: leadEmail,
		Source:    source,
	}

	body, err := renderTemplate("lead_assigned.html", data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Novo lead para você: %s", leadName)
	return s.send(to, subject, body)
}

func (s *EmailSender) SendPortalInvite(to, toName, companyName string) error {
	data := PortalInviteData{
		Name:        toName,
		CompanyName: companyName,
		PortalURL:   os.Getenv("PORTAL_URL"),
	}

	body, err := renderTemplate("portal_invite.html", data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Seu acesso ao portal da %s chegou 🚀", companyName)
	return s.send(to, subject, body)
}

func renderTemplate(name string, data any) (string, error) {
	tmplPath := filepath.Join("templates", name)
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
