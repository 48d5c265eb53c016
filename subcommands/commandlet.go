package subcommands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nimp-build/nimp/locale"
	"github.com/nimp-build/nimp/utils/commands"
	"github.com/nimp-build/nimp/utils/config"
	"github.com/nimp-build/nimp/utils/unreal"
)

type CommandletCMD struct {
	Game string

	stdout io.Writer
}

func (*CommandletCMD) Name() string     { return "commandlet" }
func (*CommandletCMD) Synopsis() string { return locale.Loc("commandlet_synopsis", nil) }
func (*CommandletCMD) Usage() string    { return locale.Loc("commandlet_usage", nil) }

func (c *CommandletCMD) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.Game, "game", "", "game to run the commandlet for, defaults to the config")
}

func (c *CommandletCMD) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(locale.Loc("missing_commandlet", nil))
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg, err = cfg.WithOverrides(config.Overrides{Game: c.Game})
	if err != nil {
		return err
	}
	if cfg.Game == "" {
		return errors.New(locale.Loc("missing_game", nil))
	}
	host, err := unreal.HostPlatform()
	if err != nil {
		return err
	}
	cmdline, err := unreal.CommandletArgs(cfg.RootDir(), cfg.Game, host, args[0], args[1:]...)
	if err != nil {
		return err
	}

	out := c.stdout
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintln(out, unreal.QuoteArgs(cmdline))
	return err
}

func init() {
	commands.RegisterCommand(&CommandletCMD{})
}
