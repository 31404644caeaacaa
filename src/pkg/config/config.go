/*
Package config loads the JSON configuration file and hands every section to
the package that owns it.

File layout:

	{
	  "report": {...},
	  "fetch":  {...},
	  "email":  {...},
	  "server": {...}
	}

Every section and every field is optional.
*/
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	echomw "donation-report/src/pkg/echo-middleware"
	"donation-report/src/pkg/email"
	"donation-report/src/pkg/imagefetch"
	"donation-report/src/pkg/report"
)

type Config struct {
	Report *report.Config     `json:"report,omitempty"`
	Fetch  *imagefetch.Config `json:"fetch,omitempty"`
	Email  *email.Config      `json:"email,omitempty"`
	Server *echomw.Config     `json:"server,omitempty"`
}

// Settings is the resolved configuration with defaults applied.
type Settings struct {
	Report report.Config
	Fetch  imagefetch.Config
	Email  email.Config
	Server echomw.Config
}

var Cfg Settings = Settings{
	Report: report.DefaultValueConfig(),
	Fetch:  imagefetch.DefaultValueConfig(),
	Email:  email.DefaultValueConfig(),
	Server: echomw.DefaultValueConfig(),
}

/*
ReadConfig reads the configuration file.

A missing file is not an error: every section falls back to defaults.
*/
func ReadConfig(path string) (cfg Config, e *xerr.Error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		tl.Log(tl.Warning, palette.Yellow, "Config file '%s' %s, using defaults", path, "not found")
		return cfg, nil
	}
	if err != nil {
		return cfg, xerr.NewError(err, "unable to read config file", path)
	}

	err = json.Unmarshal(content, &cfg)
	if err != nil {
		return cfg, xerr.NewError(err, "unable to parse config file", path)
	}

	return cfg, nil
}

/*
InitializeConfig reads the file at path and initializes every package config.

Quits on a config file that exists but cannot be parsed.
*/
func InitializeConfig(path string) {
	cfg, e := ReadConfig(path)
	e.QuitIf(xerr.ErrorTypeError)

	Apply(cfg)
}

// Apply initializes package configs from an already parsed file.
func Apply(cfg Config) {
	Cfg.Report = report.InitializeConfig(cfg.Report)
	Cfg.Fetch = imagefetch.InitializeConfig(cfg.Fetch)

	email.InitializeConfig(cfg.Email)
	Cfg.Email = email.Cfg

	echomw.InitializeConfig(cfg.Server)
	Cfg.Server = echomw.Cfg

	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", "resolved"), Cfg)
}
