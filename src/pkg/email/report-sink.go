package email

import (
	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/report"
)

var _ report.Sink = (*ReportSink)(nil)

// ReportSink mails the finished PDF as an attachment.
type ReportSink struct {
	Provider   Provider
	Sender     string
	Recipients []string
	Subject    string
	Text       string
	SendEmails bool
}

func (s *ReportSink) Deliver(name string, document []byte) (e *xerr.Error) {
	attachment := Attachment{Filename: name, ContentType: "application/pdf", Data: document}
	return SendMessage(s.Provider, &s.SendEmails, s.Sender, s.Recipients, s.Subject, s.Text, "", []Attachment{attachment})
}
