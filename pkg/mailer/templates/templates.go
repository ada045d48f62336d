package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

// subjects maps template names to their mail subject line.
var subjects = map[string]string{
	"welcome": "Bienvenido a Inmobo",
}

// texts is the plain-text fallback per template.
var texts = map[string]string{
	"welcome": "Tu cuenta en Inmobo fue creada correctamente. Ya puedes explorar propiedades, guardar favoritas y publicar tu anuncio.",
}

// Render produces the subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	t, err := htmpl.ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", "", "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", "", "", err
	}
	return subject, texts[name], buf.String(), nil
}
