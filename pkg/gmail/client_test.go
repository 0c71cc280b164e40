package gmail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMIME(t *testing.T) {
	raw, err := buildMIME("sales@nodari.ai", Message{
		To:       "ops@acme.example",
		Subject:  "Your AI Proposal",
		HTMLBody: "<p>Hello</p>",
	})
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, "From: sales@nodari.ai\r\n")
	assert.Contains(t, s, "To: ops@acme.example\r\n")
	assert.Contains(t, s, "Subject: Your AI Proposal\r\n")
	assert.Contains(t, s, "multipart/mixed")
	assert.Contains(t, s, `text/html; charset="UTF-8"`)
	assert.Contains(t, s, "<p>Hello</p>")
}

func TestBuildMIMEWithAttachment(t *testing.T) {
	raw, err := buildMIME("sales@nodari.ai", Message{
		To:       "ops@acme.example",
		Subject:  "Proposal attached",
		HTMLBody: "<p>See attached.</p>",
		Attachment: &Attachment{
			Filename: "proposal.html",
			MIMEType: "text/html",
			Data:     []byte("<h1>Proposal</h1>"),
		},
	})
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, `attachment; filename="proposal.html"`)
	assert.Contains(t, s, "Content-Transfer-Encoding: base64")
	// Attachment bytes must be base64, not raw.
	assert.NotContains(t, strings.SplitN(s, "attachment", 2)[1], "<h1>")
}
