package coverletter

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"coverletter-backend/internal/extract"
	"coverletter-backend/internal/llm"
	"coverletter-backend/internal/pdfgen"
	"coverletter-backend/internal/shared/server/middleware"
	"coverletter-backend/internal/shared/server/respond"
	"coverletter-backend/internal/shared/telemetry"
	"coverletter-backend/internal/shared/util"
)

const (
	pdfContentType   = "application/pdf"
	letterFileName   = "cover_letter.pdf"
	defaultMaxUpload = 10 << 20
	multipartMemory  = 32 << 20
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUpload
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches cover letter routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/generate", h.generate)
}

// RegisterDiagnosticRoutes attaches the manual PDF pipeline checks.
func (h *Handler) RegisterDiagnosticRoutes(rg gin.IRoutes) {
	rg.GET("/test-pdf", testPage)
	rg.GET("/download-test-pdf", h.downloadTestPDF)
}

func (h *Handler) generate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "Upload exceeds the maximum allowed size.", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid form data.", nil)
		return
	}

	sub, err := submissionFromForm(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("contentMode", string(sub.Content.Mode()))

	out, err := h.Svc.Generate(c.Request.Context(), sub)
	if err != nil {
		writeError(c, err)
		return
	}

	respond.Attachment(c, pdfContentType, letterFileName, out)
}

func submissionFromForm(c *gin.Context) (Submission, error) {
	sub := Submission{
		Applicant: Applicant{
			Name:      c.PostForm("name"),
			Email:     c.PostForm("email"),
			Phone:     c.PostForm("phone"),
			LinkedIn:  strings.TrimSpace(c.PostForm("linkedin")),
			GitHub:    strings.TrimSpace(c.PostForm("github")),
			Portfolio: strings.TrimSpace(c.PostForm("portfolio")),
			Employer:  c.PostForm("employer"),
			JobTitle:  c.PostForm("job_title"),
		},
	}

	if !ParseUseAI(c.PostForm("use_ai")) {
		sub.Content = ManualContent{Body: c.PostForm("custom_content")}
		return sub, nil
	}

	ai := AIContent{JobDescription: c.PostForm("job_description")}
	fileHeader, err := c.FormFile("resume")
	switch {
	case err == nil:
		upload, err := readUpload(fileHeader)
		if err != nil {
			return sub, err
		}
		ai.Resume = upload
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return sub, invalid("resume", "Unable to read resume upload.")
	}
	sub.Content = ai
	return sub, nil
}

func readUpload(fh *multipart.FileHeader) (*Upload, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, invalid("resume", "Unable to read resume upload.")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, invalid("resume", "Unable to read resume upload.")
	}
	name, err := util.SanitizeFileName(fh.Filename)
	if err != nil {
		name = "resume.pdf"
	}
	return &Upload{FileName: name, Data: data}, nil
}

// writeError maps pipeline failures to HTTP responses. The final arm covers
// anything not in the known set.
func writeError(c *gin.Context, err error) {
	var validation *ValidationError
	switch {
	case errors.As(err, &validation):
		respond.Error(c, http.StatusBadRequest, "validation_error", validation.Message, gin.H{"field": validation.Field})
	case errors.Is(err, extract.ErrDocumentRead):
		respond.Error(c, http.StatusBadRequest, "invalid_document", "Could not read resume PDF.", nil)
	case errors.Is(err, extract.ErrExtraction):
		respond.Error(c, http.StatusInternalServerError, "extraction_error", "Error processing resume PDF.", nil)
	case errors.Is(err, llm.ErrUnavailable):
		respond.Error(c, http.StatusInternalServerError, "completion_unavailable", "OpenAI API key not configured on the server.", nil)
	case errors.Is(err, llm.ErrService):
		respond.Error(c, http.StatusInternalServerError, "completion_error", "Failed to generate AI cover letter: "+err.Error(), nil)
	case errors.Is(err, ErrTemplate):
		respond.Error(c, http.StatusInternalServerError, "template_error", "Failed to render cover letter template.", nil)
	case errors.Is(err, pdfgen.ErrRender):
		respond.Error(c, http.StatusInternalServerError, "render_error", "Failed to generate PDF.", nil)
	default:
		telemetry.Error("coverletter.unhandled_error", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"error":      err.Error(),
			"stack":      string(debug.Stack()),
			"path":       c.Request.URL.Path,
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
	}
}
