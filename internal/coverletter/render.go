package coverletter

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	"time"
)

// DefaultTemplate is the template file rendered for every letter.
const DefaultTemplate = "cover_letter.html"

// DateLayout formats the letter date, e.g. "June 05, 2025".
const DateLayout = "January 02, 2006"

//go:embed templates/*.html
var embeddedTemplates embed.FS

// RenderContext is the field set handed to the template for one request.
type RenderContext struct {
	Name       string
	Email      string
	Phone      string
	LinkedIn   string
	GitHub     string
	Portfolio  string
	Employer   string
	JobTitle   string
	Paragraphs []string
	Date       string
}

// NewRenderContext snapshots the applicant, paragraphs and date.
func NewRenderContext(a Applicant, paragraphs []string, now time.Time) RenderContext {
	return RenderContext{
		Name:       a.Name,
		Email:      a.Email,
		Phone:      a.Phone,
		LinkedIn:   a.LinkedIn,
		GitHub:     a.GitHub,
		Portfolio:  a.Portfolio,
		Employer:   a.Employer,
		JobTitle:   a.JobTitle,
		Paragraphs: append([]string(nil), paragraphs...),
		Date:       now.Format(DateLayout),
	}
}

// Renderer executes the named html/template from fsys. The template is
// parsed on first use; a parse failure is returned on every call.
type Renderer struct {
	fsys fs.FS
	name string

	once sync.Once
	tmpl *template.Template
	err  error
}

// NewRenderer constructs a Renderer for template name in fsys.
func NewRenderer(fsys fs.FS, name string) *Renderer {
	return &Renderer{fsys: fsys, name: name}
}

// DefaultRenderer renders the embedded cover letter template.
func DefaultRenderer() *Renderer {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return &Renderer{name: DefaultTemplate, err: fmt.Errorf("%w: %v", ErrTemplate, err)}
	}
	return NewRenderer(sub, DefaultTemplate)
}

// Render returns the markup for rc.
func (r *Renderer) Render(rc RenderContext) (string, error) {
	tmpl, err := r.template()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, rc); err != nil {
		return "", fmt.Errorf("%w: execute %s: %v", ErrTemplate, r.name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) template() (*template.Template, error) {
	r.once.Do(func() {
		if r.err != nil {
			return
		}
		if r.fsys == nil {
			r.err = fmt.Errorf("%w: no template source for %s", ErrTemplate, r.name)
			return
		}
		tmpl, err := template.New(path.Base(r.name)).Option("missingkey=error").ParseFS(r.fsys, r.name)
		if err != nil {
			r.err = fmt.Errorf("%w: parse %s: %v", ErrTemplate, r.name, err)
			return
		}
		r.tmpl = tmpl
	})
	return r.tmpl, r.err
}
