package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
CheckIfEnvVarsPresent loads .env (when there is one) and returns the names
that are still unset.

Missing variables are only reported; the caller decides whether that is fatal.
*/
func CheckIfEnvVarsPresent(names ...string) (missing []string) {
	loadErr := godotenv.Load()
	if loadErr != nil {
		tl.Log(tl.Verbose, palette.CyanDim, "No .env file loaded: '%s'", loadErr)
	}

	for _, name := range names {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			tl.Log(tl.Warning, palette.Yellow, "Environment variable '%s' is %s", name, "not set")
			missing = append(missing, name)
		}
	}

	return missing
}
