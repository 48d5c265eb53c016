package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/subcommands"
	"github.com/nimp-build/nimp/locale"
	"github.com/nimp-build/nimp/utils"
	"github.com/nimp-build/nimp/utils/commands"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	_ "github.com/nimp-build/nimp/subcommands"
)

var version string

func selectCommand() {
	fmt.Fprintln(os.Stderr, locale.Loc("available_commands", nil))
	for _, name := range commands.Names() {
		fmt.Fprintf(os.Stderr, "\t%s\t%s\n", name, commands.Registered[name].Synopsis())
	}
	fmt.Fprintln(os.Stderr, locale.Loc("use_to_run_command", nil))
	fmt.Fprint(os.Stderr, locale.Loc("input_command", nil))

	reader := bufio.NewReader(os.Stdin)
	target, _ := reader.ReadString('\n')
	target = strings.TrimSpace(target)
	if target != "" {
		os.Args = append(os.Args, strings.Fields(target)...)
	}
}

func main() {
	utils.Version = version

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.BoolVar(&utils.Options.Debug, "debug", false, "debug mode")
	flag.StringVar(&utils.Options.LogFile, "log-file", "", "also write the log to this file")
	flag.StringVar(&utils.Options.ConfigFile, "config", "", "config file, defaults to the .nimp.yaml found from the working directory")
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.ImportantFlag("debug")
	subcommands.ImportantFlag("config")

	if len(os.Args) < 2 && term.IsTerminal(int(os.Stdin.Fd())) {
		selectCommand()
	}

	flag.Parse()

	if err := setupLogging(utils.Options.Debug, utils.Options.LogFile); err != nil {
		logrus.Fatal(err)
	}
	if utils.Version != "" {
		logrus.Debugf("nimp version: %s", utils.Version)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	ret := subcommands.Execute(ctx)
	os.Exit(int(ret))
}
