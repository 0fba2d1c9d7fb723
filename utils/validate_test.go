package utils_test

import (
	"testing"

	"shiphaus-platform/utils"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, utils.IsValidEmail("jo@example.com"))
	assert.True(t, utils.IsValidEmail("jo+tag@sub.example.co"))
	assert.False(t, utils.IsValidEmail("not-an-email"))
	assert.False(t, utils.IsValidEmail("jo@example"))
	assert.False(t, utils.IsValidEmail("jo example@x.com"))
	assert.False(t, utils.IsValidEmail(""))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, utils.IsValidURL("https://example.com"))
	assert.True(t, utils.IsValidURL("http://example.com/path?q=1"))
	assert.False(t, utils.IsValidURL("/relative/path"))
	assert.False(t, utils.IsValidURL("example.com"))
	assert.False(t, utils.IsValidURL("not a url"))
}

func TestBuildCliPrompt(t *testing.T) {
	prompt := utils.BuildCliPrompt(utils.CliPromptParams{
		Token:     "sh_cli_abc",
		ChapterID: "nyc",
		EventID:   "evt-1",
		BaseURL:   "https://shiphaus.org",
	})

	assert.Contains(t, prompt, "Token: sh_cli_abc")
	assert.Contains(t, prompt, "API: https://shiphaus.org/api/cli/submit")
	assert.Contains(t, prompt, "Upload: https://shiphaus.org/api/cli/upload")
	assert.Contains(t, prompt, "Chapter: nyc")
	assert.Contains(t, prompt, "Event: evt-1")
	assert.Contains(t, prompt, `Authorization: Bearer sh_cli_abc`)
	assert.Contains(t, prompt, `"chapterId":"nyc"`)
}
