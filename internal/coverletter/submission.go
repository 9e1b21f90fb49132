package coverletter

import "strings"

// Mode names the content path used for a submission.
type Mode string

const (
	ModeAI     Mode = "ai"
	ModeManual Mode = "manual"
)

// Upload is an uploaded file held in memory for one request.
type Upload struct {
	FileName string
	Data     []byte
}

// Content selects how the letter body is obtained. AIContent and
// ManualContent are the only implementations.
type Content interface {
	Mode() Mode
	sealed()
}

// AIContent derives the body from resume text and a job description.
type AIContent struct {
	Resume         *Upload
	JobDescription string
}

// ManualContent uses caller-supplied body text verbatim.
type ManualContent struct {
	Body string
}

func (AIContent) Mode() Mode     { return ModeAI }
func (AIContent) sealed()        {}
func (ManualContent) Mode() Mode { return ModeManual }
func (ManualContent) sealed()    {}

// ParseUseAI interprets the use_ai form flag. Only a case-insensitive
// "true" enables AI mode.
func ParseUseAI(raw string) bool {
	return strings.ToLower(raw) == "true"
}

// Applicant holds identity and target-job fields from the form.
type Applicant struct {
	Name      string
	Email     string
	Phone     string
	LinkedIn  string
	GitHub    string
	Portfolio string
	Employer  string
	JobTitle  string
}

// Submission is one cover letter request.
type Submission struct {
	Applicant Applicant
	Content   Content
}

// Validate checks the fields required regardless of content mode.
func (s Submission) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", s.Applicant.Name},
		{"email", s.Applicant.Email},
		{"phone", s.Applicant.Phone},
		{"employer", s.Applicant.Employer},
		{"job_title", s.Applicant.JobTitle},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(r.field, r.field+" is required.")
		}
	}
	if s.Content == nil {
		return invalid("use_ai", "content source is required.")
	}
	return nil
}
