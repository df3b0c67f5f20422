package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/valyala/fasthttp"

	"github.com/taskdeck/backend/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl := template.New("").Funcs(template.FuncMap{
		"percent": domain.CompletionPercent,
	})
	tmpl, err := tmpl.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the named page into the response. Rendering goes through a
// buffer so a template failure never leaks a half-written page.
func (r *Renderer) Render(ctx *fasthttp.RequestCtx, page string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, page, data); err != nil {
		return err
	}
	ctx.Response.Header.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(buf.Bytes())
	return nil
}

// Page data shapes.

type LoginData struct {
	Email         string
	Flash         string
	Error         string
	GitHubEnabled bool
}

type RegisterData struct {
	Email string
	Error string
}

type DashboardData struct {
	Email string
	Tasks []domain.Task
	Error string
}

type DirectoryRow struct {
	Name  string
	Email string
}

type DirectoryData struct {
	Email string
	Users []DirectoryRow
	Error string
}
