// Package tailer resolves log file globs and follows growing log files.
package tailer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// pollInterval backs up fsnotify on file systems that miss write events.
var pollInterval = time.Second

// Expand resolves patterns such as Saved/Logs/**/*.log to files. Results
// keep the pattern order, each pattern's matches sorted, without duplicates.
// A pattern without wildcards must name an existing file.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if !strings.ContainsAny(pattern, "*?[{") {
				return nil, fmt.Errorf("%s: %w", pattern, os.ErrNotExist)
			}
			logrus.Warnf("No file matches %s", pattern)
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, err
			}
			if seen[abs] {
				continue
			}
			seen[abs] = true
			files = append(files, m)
		}
	}
	return files, nil
}

// Follow sends every line of path to out, from the start of the file,
// then keeps sending lines appended to it until ctx is done or the file
// is removed. A truncated file is read again from its start. A trailing
// line without newline is sent last. out is closed on return.
func Follow(ctx context.Context, path string, out chan<- string) error {
	defer close(out)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	t := &follower{f: f, r: bufio.NewReader(f), out: out}
	if err := t.drain(); err != nil {
		return err
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return t.finish()
		case ev, ok := <-w.Events:
			if !ok {
				return t.finish()
			}
			switch {
			case ev.Has(fsnotify.Write):
				if err := t.poll(); err != nil {
					return err
				}
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				logrus.Warnf("%s went away, stopped following it", path)
				return t.finish()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return t.finish()
			}
			logrus.Warnf("watcher error: %v", err)
		case <-ticker.C:
			if err := t.poll(); err != nil {
				return err
			}
		}
	}
}

type follower struct {
	f       *os.File
	r       *bufio.Reader
	out     chan<- string
	partial strings.Builder
	offset  int64
}

// poll restarts from the beginning of a truncated file, then drains it.
func (t *follower) poll() error {
	st, err := t.f.Stat()
	if err != nil {
		return err
	}
	if st.Size() < t.offset {
		logrus.Warnf("%s was truncated, reading it from the start", t.f.Name())
		if _, err := t.f.Seek(0, io.SeekStart); err != nil {
			return err
		}
		t.r.Reset(t.f)
		t.partial.Reset()
		t.offset = 0
	}
	return t.drain()
}

// drain sends the complete lines available right now.
func (t *follower) drain() error {
	for {
		chunk, err := t.r.ReadString('\n')
		t.offset += int64(len(chunk))
		t.partial.WriteString(chunk)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line := strings.TrimSuffix(t.partial.String(), "\n")
		t.partial.Reset()
		t.out <- line
	}
}

func (t *follower) finish() error {
	err := t.drain()
	if t.partial.Len() > 0 {
		t.out <- t.partial.String()
		t.partial.Reset()
	}
	return err
}
