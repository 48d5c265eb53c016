// Package subcommands holds the nimp commands.
package subcommands

import (
	"github.com/nimp-build/nimp/utils"
	"github.com/nimp-build/nimp/utils/config"
)

// loadConfig reads the -config file, or the .nimp.yaml found from the
// working directory.
func loadConfig() (*config.Config, error) {
	if utils.Options.ConfigFile != "" {
		return config.Load(utils.Options.ConfigFile)
	}
	return config.Discover(".")
}
