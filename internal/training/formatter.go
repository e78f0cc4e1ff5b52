// Package training turns threaded conversations into prompt/response pairs
// for fine-tuning one model per participant.
package training

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

// Pair is one training example for Participant: given Input, they were
// answered with Output.
type Pair struct {
	Participant string
	Input       string
	Output      string
}

// Pairs walks every thread in order. Each participant accumulates a context
// that starts with their first message in the thread and grows with every
// later message from someone else. Whenever another author speaks, each
// participant already present gets a pair whose Input is their context so far
// and whose Output is the new message.
func Pairs(threads []types.Thread) []Pair {
	var out []Pair
	for _, th := range threads {
		context := map[string]string{}
		var present []string

		for _, m := range th {
			for _, p := range present {
				if p == m.Author {
					continue
				}
				out = append(out, Pair{Participant: p, Input: context[p], Output: m.Text})
				context[p] += "\n" + m.Text
			}
			if _, ok := context[m.Author]; !ok {
				context[m.Author] = m.Text
				present = append(present, m.Author)
			}
		}
	}
	return out
}

// FileName is the per-participant output file name.
func FileName(participant string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", string(os.PathSeparator), "_").Replace(participant)
	return safe + "_training_data.txt"
}

// WriteFiles appends pairs to one file per participant under dir and returns
// the number of pairs written per file.
func WriteFiles(dir string, pairs []Pair) (map[string]int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	byFile := map[string][]Pair{}
	var order []string
	for _, p := range pairs {
		name := FileName(p.Participant)
		if _, ok := byFile[name]; !ok {
			order = append(order, name)
		}
		byFile[name] = append(byFile[name], p)
	}

	counts := make(map[string]int, len(order))
	for _, name := range order {
		if err := appendPairs(filepath.Join(dir, name), byFile[name]); err != nil {
			return counts, err
		}
		counts[name] = len(byFile[name])
	}
	return counts, nil
}

func appendPairs(path string, pairs []Pair) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, p := range pairs {
		fmt.Fprintf(w, "Input: %s\nOutput: %s\n\n", p.Input, p.Output)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
