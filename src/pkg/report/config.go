package report

import (
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"donation-report/src/pkg/util"
)

type Config struct {
	Title             string `json:"title,omitempty"`
	EventName         string `json:"event_name,omitempty"`
	OrganizationName  string `json:"organization_name,omitempty"`
	GridColumns       int    `json:"grid_columns,omitempty"`
	GridRows          int    `json:"grid_rows,omitempty"`
	DescriptionBudget int    `json:"description_budget,omitempty"` // runes kept on proof cards
}

func DefaultValueConfig() Config {
	return Config{
		Title:             "Complete Report",
		EventName:         "Halal Bi Halal",
		OrganizationName:  "Majelis Dzikir Tasbih Indonesia",
		GridColumns:       2,
		GridRows:          2,
		DescriptionBudget: 48,
	}
}

/*
If local Config is provided - use it. Replace all missing values with default ones.

If not provided - just use defaultConfig.
*/
func InitializeConfig(localConfig *Config) (cfg Config) {
	if localConfig == nil {
		tl.Log(tl.Info, palette.Purple, "%s config is %s, keeping %s", "report", "not provided", "default report config")
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
	// A4 fits at most 4x4 legible proof cards.
	cfg.GridColumns = util.Clamp(cfg.GridColumns, 1, 4)
	cfg.GridRows = util.Clamp(cfg.GridRows, 1, 4)

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", "report", "provided", "local report config")
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", util.GetPackageName()), cfg)
	return cfg
}
