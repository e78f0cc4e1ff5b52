package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

// LoadMessages reads a flat JSON array of chat records.
func LoadMessages(path string) ([]types.Message, error) {
	var msgs []types.Message
	if err := readJSON(path, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// LoadThreads reads a JSON array of threads. Annotation fields, if present,
// are ignored.
func LoadThreads(path string) ([]types.Thread, error) {
	var threads []types.Thread
	if err := readJSON(path, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes v as 4-space indented UTF-8 JSON. The document goes to a
// temporary file next to path and is renamed into place only once fully
// written, so a failed run never leaves a partial output behind.
func WriteJSON(path string, v any) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err = enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
