// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package contact

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/yosssi/gohtml"

	"github.com/setrini/inmobiliaria/internal/platform/mailer"
	"github.com/setrini/inmobiliaria/pkg/pointer"
)

// notificationHTML escapes every interpolated value; enquiries are untrusted input.
var notificationHTML = htmltemplate.Must(htmltemplate.New("contact_html").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #1a1a2e; color: white; padding: 20px; text-align: center; }
.content { padding: 20px; background: #f9f9f9; }
.field { margin-bottom: 15px; }
.label { font-weight: bold; color: #666; }
.value { margin-top: 5px; white-space: pre-line; }
.footer { padding: 15px; text-align: center; font-size: 12px; color: #666; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>Nuevo Mensaje de Contacto</h1></div>
<div class="content">
<div class="field"><div class="label">Nombre:</div><div class="value">{{.Name}}</div></div>
<div class="field"><div class="label">Email:</div><div class="value">{{.Email}}</div></div>
{{if .Phone}}<div class="field"><div class="label">Teléfono:</div><div class="value">{{.Phone}}</div></div>{{end}}
{{if .PropertyTitle}}<div class="field"><div class="label">Propiedad de Interés:</div><div class="value">{{.PropertyTitle}}</div></div>{{end}}
<div class="field"><div class="label">Mensaje:</div><div class="value">{{.Message}}</div></div>
</div>
<div class="footer">Marile Setrini Inmobiliaria</div>
</div>
</body>
</html>`))

var notificationText = texttemplate.Must(texttemplate.New("contact_text").Parse(
	`Nuevo mensaje de {{.Name}} ({{.Email}}){{if .Phone}}, tel. {{.Phone}}{{end}}
{{if .PropertyTitle}}Propiedad: {{.PropertyTitle}}
{{end}}
{{.Message}}
`))

// notificationData is the flat view the templates render.
type notificationData struct {
	Name          string
	Email         string
	Phone         string
	Message       string
	PropertyTitle string
}

// BuildNotification renders the inbox email for a stored enquiry.
func BuildNotification(to string, message *Message) (mailer.Message, error) {
	data := notificationData{
		Name:          message.Name,
		Email:         message.Email,
		Phone:         pointer.Val(message.Phone),
		Message:       message.Message,
		PropertyTitle: message.PropertyTitle,
	}

	var html bytes.Buffer
	if err := notificationHTML.Execute(&html, data); err != nil {
		return mailer.Message{}, fmt.Errorf("contact_html_render_failed: %w", err)
	}

	var text bytes.Buffer
	if err := notificationText.Execute(&text, data); err != nil {
		return mailer.Message{}, fmt.Errorf("contact_text_render_failed: %w", err)
	}

	// Subject lines must stay on one line.
	subjectName := strings.Join(strings.Fields(message.Name), " ")

	return mailer.Message{
		To:      to,
		Subject: "Nuevo mensaje de contacto - " + subjectName,
		HTML:    gohtml.Format(html.String()),
		Text:    text.String(),
	}, nil
}
