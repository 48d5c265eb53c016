package subcommands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/flytam/filenamify"
	"github.com/google/uuid"
	"github.com/nimp-build/nimp/handlers/summary"
	"github.com/nimp-build/nimp/locale"
	"github.com/nimp-build/nimp/utils"
	"github.com/nimp-build/nimp/utils/commands"
	"github.com/nimp-build/nimp/utils/config"
	"github.com/nimp-build/nimp/utils/tailer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var errLogHasErrors = errors.New("the log contains errors")

type SummarizeCMD struct {
	Output    string
	ReportDir string
	Metrics   string
	Follow    bool
	Color     bool

	stdin  io.Reader
	stdout io.Writer
}

func (*SummarizeCMD) Name() string     { return "summarize" }
func (*SummarizeCMD) Synopsis() string { return locale.Loc("summarize_synopsis", nil) }
func (*SummarizeCMD) Usage() string    { return locale.Loc("summarize_usage", nil) }

func (c *SummarizeCMD) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.Output, "o", "", "write the report to this file instead of stdout")
	f.StringVar(&c.ReportDir, "report-dir", "", "also write the report in this directory, named after the game and time, relative to the config directory")
	f.StringVar(&c.Metrics, "metrics", "", "write summary metrics to this Prometheus textfile")
	f.BoolVar(&c.Follow, "follow", false, "follow a growing log file until interrupted")
	f.BoolVar(&c.Color, "color", false, "highlight errors and warnings when writing to a terminal")
}

func (c *SummarizeCMD) Execute(ctx context.Context, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, classifier, err := cfg.Summarizer()
	if err != nil {
		return err
	}
	utils.DataFolder = cfg.Dir()

	log := logrus.WithField("run", uuid.NewString())
	log.Debugf("Summarizing %v", args)

	lines, err := c.feed(ctx, args, classifier, s)
	if interrupted(err) {
		log.Warn(locale.Loc("summarize_interrupted", nil))
	} else if err != nil {
		return err
	}

	if err := c.writeReport(s, cfg); err != nil {
		return err
	}

	errs, warnings, assets := s.Totals()
	log.Info(locale.Loc("summary_totals", locale.Strmap{
		"Errors":   errs,
		"Warnings": warnings,
		"Assets":   assets,
		"Lines":    lines,
	}))

	if c.Metrics != "" {
		m := utils.NewSummaryMetrics(prometheus.Labels{"game": cfg.Game})
		m.Set(errs, warnings, assets, lines)
		if err := m.WriteTextfile(c.Metrics); err != nil {
			return err
		}
	}

	if errs > 0 {
		return errLogHasErrors
	}
	return nil
}

func (c *SummarizeCMD) feed(ctx context.Context, args []string, classifier *summary.Classifier, s *summary.Summarizer) (int, error) {
	if c.Follow {
		if len(args) != 1 {
			return 0, errors.New(locale.Loc("follow_one_file", nil))
		}
		ch := make(chan string, 512)
		done := make(chan error, 1)
		go func() { done <- tailer.Follow(ctx, args[0], ch) }()
		// The follower closes ch once ctx is done, read everything it sent.
		n, _ := summary.FeedLines(context.Background(), ch, classifier, s)
		if err := <-done; err != nil {
			return n, err
		}
		return n, ctx.Err()
	}

	if len(args) == 0 {
		stdin := c.stdin
		if stdin == nil {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return 0, fmt.Errorf("%w: %s", utils.ErrNoInput, locale.Loc("no_input", nil))
			}
			stdin = os.Stdin
		}
		return summary.Feed(ctx, stdin, classifier, s)
	}

	files, err := tailer.Expand(args)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, file := range files {
		n, err := feedFile(ctx, file, classifier, s)
		total += n
		if err != nil {
			return total, err
		}
		s.Reset()
	}
	return total, nil
}

func feedFile(ctx context.Context, path string, classifier *summary.Classifier, s *summary.Summarizer) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	logrus.Debugf("Reading %s", path)
	n, err := summary.Feed(ctx, f, classifier, s)
	if err != nil && !interrupted(err) {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	return n, err
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (c *SummarizeCMD) writeReport(s *summary.Summarizer, cfg *config.Config) error {
	switch {
	case c.Output != "":
		if err := writeReportFile(s, c.Output); err != nil {
			return err
		}
	case c.stdout != nil:
		if err := s.Render(c.stdout); err != nil {
			return err
		}
	case c.Color && term.IsTerminal(int(os.Stdout.Fd())):
		if err := s.RenderColor(os.Stdout); err != nil {
			return err
		}
	default:
		if err := s.Render(os.Stdout); err != nil {
			return err
		}
	}

	if c.ReportDir == "" {
		return nil
	}
	dir := utils.PathData(c.ReportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path, err := reportPath(dir, cfg.Game, time.Now())
	if err != nil {
		return err
	}
	return writeReportFile(s, path)
}

func reportPath(dir, game string, now time.Time) (string, error) {
	if game == "" {
		game = "nimp"
	}
	name, err := filenamify.FilenamifyV2(fmt.Sprintf("%s_%s_summary.txt", game, now.Format("2006-01-02_15-04-05")))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func writeReportFile(s *summary.Summarizer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logrus.Info(locale.Loc("report_written", locale.Strmap{"Path": path}))
	return nil
}

func init() {
	commands.RegisterCommand(&SummarizeCMD{})
}
