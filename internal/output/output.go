// Package output serializes a trigger envelope and persists it to disk.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"triggergen/internal/trigger"
)

// DefaultPath is where a default run writes the dataset.
const DefaultPath = "data/triggers_v3.json"

const filePerm = 0644

// Encode renders the envelope as two-space indented JSON with no trailing newline.
func Encode(env *trigger.Envelope) ([]byte, error) {
	if env == nil {
		return nil, fmt.Errorf("encode: nil envelope")
	}
	if env.Triggers == nil {
		// An empty list must serialize as [] rather than null.
		cp := *env
		cp.Triggers = []trigger.Trigger{}
		env = &cp
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return data, nil
}

// WriteFile writes data to path, replacing any existing file. The bytes land in a
// temporary sibling first and are renamed into place, so a failed write leaves
// neither a partial file nor a damaged previous version. The parent directory
// must already exist.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteEnvelope encodes env and writes it to path. It returns the number of bytes
// written.
func WriteEnvelope(path string, env *trigger.Envelope) (int, error) {
	data, err := Encode(env)
	if err != nil {
		return 0, err
	}
	if err := WriteFile(path, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// WriteTo streams the encoded envelope to w.
func WriteTo(w io.Writer, env *trigger.Envelope) (int, error) {
	data, err := Encode(env)
	if err != nil {
		return 0, err
	}
	return w.Write(data)
}
