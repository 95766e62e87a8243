package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// builtinTemplates are the shipped defaults. A row in email_templates
// with the same name overrides the built-in version.
var builtinTemplates = map[string]struct {
	Subject string
	Body    string
}{
	"welcome": {
		Subject: "Welcome to BuildXpert",
		Body: `<p>Hi {{.Name}},</p>
<p>Your BuildXpert account is ready. Post your first job and our team will be in touch.</p>
<p>The BuildXpert team</p>`,
	},
	"new_message": {
		Subject: "New message about your job",
		Body: `<p>Hi {{.Name}},</p>
<p>You have a new message from {{.SenderName}} about <strong>{{.JobTitle}}</strong>:</p>
<blockquote>{{.Preview}}</blockquote>
<p>Reply from your BuildXpert dashboard.</p>`,
	},
	"contact_received": {
		Subject: "New contact form submission",
		Body: `<p>New contact form submission from {{.Name}} ({{.Email}}):</p>
<blockquote>{{.Message}}</blockquote>`,
	},
	"job_published": {
		Subject: "Your job is live",
		Body: `<p>Hi {{.Name}},</p>
<p>Your job <strong>{{.JobTitle}}</strong> is now published. We will notify you when someone gets in touch.</p>`,
	},
}

// RenderTemplate fills subject and body templates with data. Both are
// parsed as html/template so user-supplied values are escaped.
func RenderTemplate(subject, body string, data any) (string, string, error) {
	renderedSubject, err := renderOne("subject", subject, data)
	if err != nil {
		return "", "", err
	}
	renderedBody, err := renderOne("body", body, data)
	if err != nil {
		return "", "", err
	}
	return renderedSubject, renderedBody, nil
}

func renderOne(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute %s template: %w", name, err)
	}
	return buf.String(), nil
}

// BuiltinTemplate returns the shipped template for name.
func BuiltinTemplate(name string) (subject, body string, ok bool) {
	t, ok := builtinTemplates[name]
	if !ok {
		return "", "", false
	}
	return t.Subject, t.Body, true
}
