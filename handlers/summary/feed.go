package summary

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const maxLineSize = 1 << 20

// Feed classifies and ingests every line of r in order. Lines longer than
// maxLineSize are truncated. It returns the number of lines read.
func Feed(ctx context.Context, r io.Reader, c *Classifier, s *Summarizer) (int, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var buf []byte

	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		chunk, isPrefix, err := br.ReadLine()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		buf = append(buf[:0], chunk...)
		truncated := false
		for isPrefix {
			if chunk, isPrefix, err = br.ReadLine(); err != nil {
				return n, err
			}
			if room := maxLineSize - len(buf); len(chunk) > room {
				chunk = chunk[:max(room, 0)]
				truncated = true
			}
			buf = append(buf, chunk...)
		}
		n++
		if truncated {
			logrus.Warnf("Line %d is longer than %d bytes, truncated", n, maxLineSize)
		}
		line := strings.TrimRight(string(buf), "\r")
		s.Ingest(line, c.Classify(line))
	}
}

// FeedLines is Feed for lines delivered on a channel. It returns when the
// channel is closed or ctx is done.
func FeedLines(ctx context.Context, lines <-chan string, c *Classifier, s *Summarizer) (int, error) {
	n := 0
	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return n, nil
			}
			line = strings.TrimRight(line, "\r")
			s.Ingest(line, c.Classify(line))
			n++
		}
	}
}
