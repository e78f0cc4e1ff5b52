package transcript

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/grantHarris/chatlog-model-tuner/internal/logger"
	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

// ErrMalformedLine is returned when the first content line is not a message header.
var ErrMalformedLine = errors.New("malformed transcript line")

// [timestamp] author: text
var linePattern = regexp.MustCompile(`^\[(.*?)\] (.*?): (.*)`)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// newBackOff is swapped in tests.
var newBackOff = func() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 12 * time.Second
	return bo
}

// Parse reads an exported chat transcript. Lines that do not start a new
// message are continuations and are appended to the previous message with a
// single space. Blank lines are ignored.
func Parse(r io.Reader) ([]types.Message, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var msgs []types.Message
	lineNo := 0
	for sc.Scan() {
		lineNo++
		// exports may prefix lines with a BOM or a left-to-right mark
		line := strings.TrimLeft(strings.TrimRight(sc.Text(), "\r"), "\ufeff\u200e")

		if m := linePattern.FindStringSubmatch(line); m != nil {
			msgs = append(msgs, types.Message{DateTime: m[1], Author: m[2], Text: m[3]})
			continue
		}

		cont := strings.TrimSpace(line)
		if cont == "" {
			continue
		}
		if len(msgs) == 0 {
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrMalformedLine, truncate(line, 80))
		}
		last := &msgs[len(msgs)-1]
		last.Text += " " + cont
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return msgs, nil
}

// Load parses a transcript from a local path or an http(s) URL.
func Load(ctx context.Context, source string, log *logger.Logger) ([]types.Message, error) {
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithComponent("transcript")

	if isURL(source) {
		log.WithField("url", source).Info("downloading transcript")
		body, err := download(ctx, source, log)
		if err != nil {
			return nil, err
		}
		return Parse(bytes.NewReader(body))
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func isURL(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func download(ctx context.Context, url string, log *logger.Logger) ([]byte, error) {
	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warn("transcript download failed")
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error %d: %s", resp.StatusCode, truncate(string(b), 200))
		}
		if resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("download failed %d: %s", resp.StatusCode, truncate(string(b), 200)))
		}
		body = b
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(newBackOff(), ctx)); err != nil {
		return nil, fmt.Errorf("download transcript: %w", err)
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
