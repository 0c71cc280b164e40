// Package gmail sends follow-up email through the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client defines the mail operations used by follow-up delivery.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Message is an outbound HTML email, optionally with one attachment.
type Message struct {
	To         string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// Attachment is a file attached to a Message.
type Attachment struct {
	Filename string
	MIMEType string
	Data     []byte
}

type service struct {
	gm     *gmailapi.Service
	sender string
}

// NewService builds a Gmail client from a service-account credentials file
// with domain-wide delegation to the sending address.
func NewService(ctx context.Context, credentialsPath, sender string) (Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, eris.Wrapf(err, "gmail: read credentials %s", credentialsPath)
	}

	cfg, err := google.JWTConfigFromJSON(data, gmailapi.GmailSendScope)
	if err != nil {
		return nil, eris.Wrap(err, "gmail: parse service account credentials")
	}
	cfg.Subject = sender

	gm, err := gmailapi.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, eris.Wrap(err, "gmail: create gmail service")
	}

	return &service{gm: gm, sender: sender}, nil
}

func (s *service) Send(ctx context.Context, msg Message) error {
	raw, err := buildMIME(s.sender, msg)
	if err != nil {
		return eris.Wrap(err, "gmail: build message")
	}

	_, err = s.gm.Users.Messages.Send("me", &gmailapi.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return eris.Wrapf(err, "gmail: send to %s", msg.To)
	}
	return nil
}

// buildMIME assembles a multipart RFC 2822 message with the HTML body and an
// optional attachment part.
func buildMIME(from string, msg Message) ([]byte, error) {
	var buf strings.Builder
	body := &strings.Builder{}
	w := multipart.NewWriter(body)

	html, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/html; charset="UTF-8"`},
	})
	if err != nil {
		return nil, err
	}
	if _, err := html.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, err
	}

	if a := msg.Attachment; a != nil {
		mimeType := a.MIMEType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {mimeType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", a.Filename)},
		})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(base64.StdEncoding.EncodeToString(a.Data))); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", w.Boundary())
	buf.WriteString("\r\n")
	buf.WriteString(body.String())

	return []byte(buf.String()), nil
}
