package llm

import "fmt"

// Message is a single chat message sent to the completion service.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

const systemPromptCoverLetter = "You are a helpful assistant for writing cover letters. Your goal is to write a compelling and concise cover letter."

const userPromptCoverLetter = "Write a professional, tailored cover letter based on this resume and job description.\n\n" +
	"Resume:\n%s\n\nJob Description:\n%s\n\n" +
	"Please write the cover letter in a polite and professional tone. " +
	"Focus on highlighting relevant skills and experiences from the resume that match the job description. " +
	"Keep it concise, typically 3-4 paragraphs."

// BuildCoverLetterMessages returns the system and user messages for a
// cover letter completion. Inputs are embedded verbatim.
func BuildCoverLetterMessages(resumeText, jobDescription string) []Message {
	return []Message{
		{Role: RoleSystem, Content: systemPromptCoverLetter},
		{Role: RoleUser, Content: fmt.Sprintf(userPromptCoverLetter, resumeText, jobDescription)},
	}
}
