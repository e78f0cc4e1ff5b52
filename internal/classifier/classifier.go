package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/grantHarris/chatlog-model-tuner/internal/logger"
)

var ErrMalformedResponse = errors.New("malformed classifier response")

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type response struct {
	Sequence string    `json:"sequence,omitempty"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// HTTP calls a zero-shot classification inference endpoint. A single call is
// one attempt; retrying is left to the caller. Client errors are wrapped with
// backoff.Permanent so the caller's retry loop gives up on them immediately.
type HTTP struct {
	url    string
	token  string
	client *http.Client
	log    *logger.Logger
}

func NewHTTP(url, token string, timeout time.Duration, log *logger.Logger) *HTTP {
	if log == nil {
		log = logger.Discard()
	}
	return &HTTP{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
		log:    log.WithComponent("classifier"),
	}
}

func (c *HTTP) Classify(ctx context.Context, text string, labels []string) (map[string]float64, error) {
	data, err := json.Marshal(request{
		Inputs:     text,
		Parameters: parameters{CandidateLabels: labels},
	})
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("classifier request failed")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.WithError(err).Warn("classifier response read failed")
		return nil, fmt.Errorf("read classifier response: %w", err)
	}
	c.log.WithField("http_status", resp.StatusCode).Debug("classifier raw:\n" + string(body))

	if resp.StatusCode >= 300 {
		err := fmt.Errorf("classifier returned %d: %s", resp.StatusCode, truncate(string(body), 200))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	return decode(body)
}

// decode accepts either a bare result object or a one-element array of them.
func decode(body []byte) (map[string]float64, error) {
	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		var arr []response
		if err2 := json.Unmarshal(body, &arr); err2 != nil || len(arr) != 1 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		r = arr[0]
	}
	if len(r.Labels) == 0 || len(r.Labels) != len(r.Scores) {
		return nil, fmt.Errorf("%w: %d labels, %d scores", ErrMalformedResponse, len(r.Labels), len(r.Scores))
	}

	out := make(map[string]float64, len(r.Labels))
	for i, l := range r.Labels {
		out[l] = r.Scores[i]
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Uniform assigns every candidate label the same score. It backs offline runs.
type Uniform struct{}

func (Uniform) Classify(ctx context.Context, text string, labels []string) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(labels))
	if len(labels) == 0 {
		return out, nil
	}
	score := 1 / float64(len(labels))
	for _, l := range labels {
		out[l] = score
	}
	return out, nil
}
