// Package email sends messages, and finished reports, through Amazon SES, Mailgun or SendGrid.
package email

import (
	"fmt"
	"os"
	"strings"

	"github.com/tuumbleweed/xerr"
)

type Provider string

const (
	ProviderSES      Provider = "ses"
	ProviderMailgun  Provider = "mailgun"
	ProviderSendGrid Provider = "sendgrid"
)

func ParseProvider(raw string) (provider Provider, e *xerr.Error) {
	switch Provider(strings.ToLower(strings.TrimSpace(raw))) {
	case ProviderSES, "amazon", "aws":
		return ProviderSES, nil
	case ProviderMailgun:
		return ProviderMailgun, nil
	case ProviderSendGrid:
		return ProviderSendGrid, nil
	}
	return provider, xerr.NewError(fmt.Errorf("provider is '%s'", raw), "unknown email provider", "expected ses, mailgun or sendgrid")
}

// EnvVars lists the environment variables provider needs.
func (p Provider) EnvVars() []string {
	switch p {
	case ProviderSES:
		return []string{"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION"}
	case ProviderMailgun:
		return []string{"MAILGUN_DOMAIN", "MAILGUN_API_KEY"}
	case ProviderSendGrid:
		return []string{"SENDGRID_API_KEY"}
	}
	return nil
}

func requireEnv(names ...string) (values map[string]string, e *xerr.Error) {
	values = make(map[string]string, len(names))
	var missing []string
	for _, name := range names {
		value := strings.TrimSpace(os.Getenv(name))
		if value == "" {
			missing = append(missing, name)
			continue
		}
		values[name] = value
	}
	if len(missing) > 0 {
		return values, xerr.NewError(fmt.Errorf("missing %s", strings.Join(missing, ", ")), "email provider is not configured", missing)
	}
	return values, nil
}
