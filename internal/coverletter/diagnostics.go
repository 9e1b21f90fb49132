package coverletter

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coverletter-backend/internal/shared/server/respond"
)

const testPageHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Test PDF</title>
    <style>
        body { font-family: sans-serif; margin: 2cm; }
        h1 { color: #333; }
        p { line-height: 1.5; }
    </style>
</head>
<body>
    <h1>Hello PDF!</h1>
    <p>This is a test PDF generated from HTML.</p>
    <p>If you see this page, HTML rendering is working. Use the link below to check PDF generation.</p>
    <a href="/download-test-pdf">Download this as PDF</a>
</body>
</html>
`

const testPDFHTML = "<h1>Hello PDF</h1><p>This is a test PDF.</p>"

func testPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(testPageHTML))
}

func (h *Handler) downloadTestPDF(c *gin.Context) {
	out, err := h.Svc.PDF.Generate(c.Request.Context(), testPDFHTML)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Attachment(c, pdfContentType, "test.pdf", out)
}
