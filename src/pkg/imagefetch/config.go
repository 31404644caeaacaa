package imagefetch

import (
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"donation-report/src/pkg/util"
)

type Config struct {
	TimeoutSeconds    int     `json:"timeout_seconds,omitempty"`
	MaxBytes          int64   `json:"max_bytes,omitempty"`
	MaxDimension      int     `json:"max_dimension,omitempty"`
	JPEGQuality       int     `json:"jpeg_quality,omitempty"`
	RequestsPerSecond float64 `json:"requests_per_second,omitempty"`
	Burst             int     `json:"burst,omitempty"`
	UserAgent         string  `json:"user_agent,omitempty"`
}

func DefaultValueConfig() Config {
	return Config{
		TimeoutSeconds:    60,
		MaxBytes:          15 << 20,
		MaxDimension:      1200,
		JPEGQuality:       80,
		RequestsPerSecond: 4,
		Burst:             1,
		UserAgent:         "donation-report/1.0",
	}
}

/*
If local Config is provided - use it. Replace all missing values with default ones.

If not provided - just use defaultConfig.
*/
func InitializeConfig(localConfig *Config) (cfg Config) {
	if localConfig == nil {
		tl.Log(tl.Info, palette.Purple, "%s config is %s, keeping %s", "imagefetch", "not provided", "default imagefetch config")
		return DefaultValueConfig()
	}

	cfg = *localConfig
	tl.ApplyDefaults(&cfg, DefaultValueConfig(), func(field string, defVal any) {
		tl.Log(
			tl.Info, palette.Purple,
			"%s field is %s in %s configuration. Using default value: %v",
			field, "missing", util.GetPackageName(), tl.PrettyForStderr(defVal),
		)
	})
	cfg.JPEGQuality = util.Clamp(cfg.JPEGQuality, 1, 100)

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", "imagefetch", "provided", "local imagefetch config")
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", util.GetPackageName()), cfg)
	return cfg
}
