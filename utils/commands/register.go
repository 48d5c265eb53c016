package commands

import (
	"context"
	"flag"
	"sort"

	"github.com/google/subcommands"
	"github.com/nimp-build/nimp/utils"
	"github.com/sirupsen/logrus"
)

var Registered = map[string]Command{}

type Command interface {
	Name() string
	Synopsis() string
	SetFlags(f *flag.FlagSet)
	Execute(ctx context.Context, args []string) error
}

// Usager is implemented by commands with more to say than their synopsis.
type Usager interface {
	Usage() string
}

func RegisterCommand(sub Command) {
	Registered[sub.Name()] = sub
	subcommands.Register(&command{sub}, "")
}

// Names returns the registered command names, sorted.
func Names() []string {
	names := make([]string, 0, len(Registered))
	for name := range Registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// command adapts a Command to google/subcommands.
type command struct {
	Command
}

func (c *command) Usage() string {
	usage := c.Name() + ": " + c.Synopsis() + "\n"
	if u, ok := c.Command.(Usager); ok {
		usage += u.Usage()
	}
	return usage
}

func (c *command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	err := utils.RecoverCall(func() error {
		return c.Command.Execute(ctx, f.Args())
	})
	if err != nil {
		logrus.Error(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
