package email

import (
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"donation-report/src/pkg/util"
)

type Config struct {
	Provider       string `json:"provider,omitempty"`
	Sender         string `json:"sender,omitempty"`
	Subject        string `json:"subject,omitempty"`
	BodyText       string `json:"body_text,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	MailgunAPIBase string `json:"mailgun_api_base,omitempty"` // e.g. the EU region endpoint
}

func DefaultValueConfig() Config {
	return Config{
		Provider:       string(ProviderMailgun),
		Subject:        "Donation report",
		BodyText:       "The latest donation report is attached.",
		TimeoutSeconds: 30,
	}
}

// create config with default values before config gets initialized
var Cfg Config = DefaultValueConfig()

/*
If local Config is provided - use it. Replace all missing values with default ones.

If not provided - just use defaultConfig.
*/
func InitializeConfig(localConfig *Config) {
	if localConfig == nil {
		tl.Log(tl.Info, palette.Purple, "%s config is %s, keeping %s", "email", "not provided", "default email config")
		return
	}

	Cfg = *localConfig
	tl.ApplyDefaults(&Cfg, DefaultValueConfig(), func(field string, defVal any) {
		tl.Log(
			tl.Info, palette.Purple,
			"%s field is %s in %s configuration. Using default value: %v",
			field, "missing", util.GetPackageName(), tl.PrettyForStderr(defVal),
		)
	})

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", "email", "provided", "local email config")
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", util.GetPackageName()), Cfg)
}
