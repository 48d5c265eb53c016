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
	"github.com/nimp-build/nimp/utils/unreal"
	"github.com/sirupsen/logrus"
)

type ProjectCMD struct {
	stdout io.Writer
}

func (*ProjectCMD) Name() string             { return "project" }
func (*ProjectCMD) Synopsis() string         { return locale.Loc("project_synopsis", nil) }
func (*ProjectCMD) SetFlags(f *flag.FlagSet) {}

func (c *ProjectCMD) Execute(ctx context.Context, args []string) error {
	out := c.stdout
	if out == nil {
		out = os.Stdout
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	project, err := unreal.FindProject(cfg.RootDir(), cfg.Unreal.VSVersion)
	if errors.Is(err, unreal.ErrNoProject) {
		logrus.Error(locale.Loc("not_unreal_project", nil))
		return err
	}
	if err != nil {
		return err
	}

	game := cfg.Game
	if game == "" {
		game = "-"
	}
	host, err := unreal.HostPlatform()
	if err != nil {
		host = "-"
	}
	_, err = fmt.Fprintf(out, "root:     %s\nengine:   %s\nvs:       %s\ngame:     %s\nhost:     %s\nos:       %s\nconfig:   %s\n",
		project.RootDir, project.Version(), project.VSVersion, game, host, unreal.HostDescription(), configSource(cfg.Path))
	return err
}

func configSource(path string) string {
	if path == "" {
		return "defaults"
	}
	return path
}

func init() {
	commands.RegisterCommand(&ProjectCMD{})
}
