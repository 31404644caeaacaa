package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tuumbleweed/xerr"
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type message struct {
	Sender      string
	Recipients  []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

/*
buildRawMessage renders message as a MIME document, the shape SES accepts for
mail with attachments.

Layout: multipart/mixed holding a multipart/alternative body (text, then html
when present) followed by one base64 part per attachment.
*/
func buildRawMessage(m message, now time.Time) (raw []byte, e *xerr.Error) {
	var buffer bytes.Buffer
	mixed := multipart.NewWriter(&buffer)

	headers := []string{
		"From: " + m.Sender,
		"To: " + strings.Join(m.Recipients, ", "),
		"Subject: " + mime.QEncoding.Encode("utf-8", m.Subject),
		"Date: " + now.Format(time.RFC1123Z),
		fmt.Sprintf("Message-ID: <%s@donation-report>", uuid.NewString()),
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q", mixed.Boundary()),
	}
	buffer.WriteString(strings.Join(headers, "\r\n") + "\r\n\r\n")

	var body bytes.Buffer
	alternative := multipart.NewWriter(&body)
	e = writeTextPart(alternative, "text/plain; charset=utf-8", m.Text)
	if e != nil {
		return nil, e
	}
	if m.HTML != "" {
		e = writeTextPart(alternative, "text/html; charset=utf-8", m.HTML)
		if e != nil {
			return nil, e
		}
	}
	err := alternative.Close()
	if err != nil {
		return nil, xerr.NewError(err, "close alternative part", nil)
	}

	part, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {fmt.Sprintf("multipart/alternative; boundary=%q", alternative.Boundary())},
	})
	if err != nil {
		return nil, xerr.NewError(err, "create body part", nil)
	}
	_, err = part.Write(body.Bytes())
	if err != nil {
		return nil, xerr.NewError(err, "write body part", nil)
	}

	for _, attachment := range m.Attachments {
		e = writeAttachment(mixed, attachment)
		if e != nil {
			return nil, e
		}
	}

	err = mixed.Close()
	if err != nil {
		return nil, xerr.NewError(err, "close MIME message", nil)
	}
	return buffer.Bytes(), nil
}

func writeTextPart(writer *multipart.Writer, contentType string, content string) (e *xerr.Error) {
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return xerr.NewError(err, "create text part", contentType)
	}
	_, err = part.Write(wrapBase64([]byte(content)))
	if err != nil {
		return xerr.NewError(err, "write text part", contentType)
	}
	return nil
}

func writeAttachment(writer *multipart.Writer, attachment Attachment) (e *xerr.Error) {
	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {mime.FormatMediaType(contentType, map[string]string{"name": attachment.Filename})},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": attachment.Filename})},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return xerr.NewError(err, "create attachment part", attachment.Filename)
	}
	_, err = part.Write(wrapBase64(attachment.Data))
	if err != nil {
		return xerr.NewError(err, "write attachment part", attachment.Filename)
	}
	return nil
}

// wrapBase64 encodes data in 76 character lines as RFC 2045 requires.
func wrapBase64(data []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(data)
	var wrapped bytes.Buffer
	for len(encoded) > 76 {
		wrapped.WriteString(encoded[:76] + "\r\n")
		encoded = encoded[76:]
	}
	wrapped.WriteString(encoded)
	return wrapped.Bytes()
}
