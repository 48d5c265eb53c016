package subcommands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nimp-build/nimp/locale"
	"github.com/nimp-build/nimp/utils/commands"
	"github.com/nimp-build/nimp/utils/config"
	"github.com/nimp-build/nimp/utils/unreal"
)

type PlatformsCMD struct {
	Platform      string
	Configuration string
	List          bool

	stdout io.Writer
}

func (*PlatformsCMD) Name() string     { return "platforms" }
func (*PlatformsCMD) Synopsis() string { return locale.Loc("platforms_synopsis", nil) }

func (c *PlatformsCMD) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.Platform, "platform", "", "\"+\" separated platforms, defaults to the config then the host")
	f.StringVar(&c.Configuration, "configuration", "", "\"+\" separated configurations")
	f.BoolVar(&c.List, "list", false, "list the accepted platform aliases")
}

func (c *PlatformsCMD) Execute(ctx context.Context, args []string) error {
	out := c.stdout
	if out == nil {
		out = os.Stdout
	}

	if c.List {
		for _, alias := range unreal.PlatformAliases() {
			fmt.Fprintf(out, "%s\t%s\n", alias, unreal.SanitizePlatform(alias))
		}
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg, err = cfg.WithOverrides(config.Overrides{Platform: c.Platform, Configuration: c.Configuration})
	if err != nil {
		return err
	}
	if cfg.Platform == "" {
		host, err := unreal.HostPlatform()
		if err != nil {
			return err
		}
		cfg.Platform = strings.ToLower(host)
	}
	return writePlatforms(out, unreal.ParsePlatforms(cfg.Platform), unreal.ParseConfigurations(cfg.Configuration))
}

func writePlatforms(out io.Writer, platforms unreal.Platforms, configurations string) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLATFORM\tBUILD\tCOOK\tINI\tTARGET")
	for _, name := range platforms.Names {
		if name == "" {
			continue
		}
		build, err := unreal.BuildPlatform(name)
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t%s\n", name, unreal.DefaultTarget(name))
			continue
		}
		cook, err := unreal.CookPlatform(build)
		if err != nil {
			cook = "-"
		}
		ini, err := unreal.ConfigurationPlatform(build)
		if err != nil {
			ini = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, build, cook, ini, unreal.DefaultTarget(name))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	build, err := unreal.BuildConfigurations(configurations)
	if err != nil {
		build = "-"
	}
	_, err = fmt.Fprintf(out, "\nconfiguration: %s (%s)\n", configurations, build)
	return err
}

func init() {
	commands.RegisterCommand(&PlatformsCMD{})
}
