package utils

import "fmt"

// CliPromptParams parameterize the plain-text prompt handed to a coding
// assistant to drive the upload-then-submit flow.
type CliPromptParams struct {
	Token     string
	ChapterID string
	EventID   string
	BaseURL   string
}

// BuildCliPrompt renders the CLI prompt artifact. The two curl invocations
// are literal: the assistant runs them verbatim after filling in the fields.
func BuildCliPrompt(p CliPromptParams) string {
	return fmt.Sprintf(`Submit my project to Shiphaus.

Token: %[1]s
API: %[4]s/api/cli/submit
Upload: %[4]s/api/cli/upload
Chapter: %[2]s
Event: %[3]s

Ask me for:
1. Project name (required, 3-100 chars)
2. Short description of what I built (required, 10-500 chars)
3. Live URL where it's deployed (required)
4. GitHub repo URL (optional)
5. Screenshot file path (optional)

If I give a screenshot path, upload it first:
curl -s -X POST %[4]s/api/cli/upload -H "Authorization: Bearer %[1]s" -F "file=@{path}"
Parse the "url" field from the JSON response.

Then submit everything:
curl -s -X POST %[4]s/api/cli/submit -H "Authorization: Bearer %[1]s" -H "Content-Type: application/json" -d '{"title":"...","description":"...","deployedUrl":"...","githubUrl":"...","screenshotUrl":"...","chapterId":"%[2]s","eventId":"%[3]s"}'

Show me the result and the link to my project.`, p.Token, p.ChapterID, p.EventID, p.BaseURL)
}
