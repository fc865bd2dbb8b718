package layer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Read deserializes a layer document from path, rejecting unknown fields.
func Read(path string) (Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layer{}, fmt.Errorf("layer: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var l Layer
	if err := dec.Decode(&l); err != nil {
		if strings.Contains(err.Error(), "not found in type") {
			return Layer{}, fmt.Errorf("layer: decode %s: %w", path, ErrUnknownField)
		}
		return Layer{}, fmt.Errorf("layer: decode %s: %w", path, err)
	}
	return l, nil
}

// Write serializes l to path using a write-temp-then-rename discipline:
// the document is first written to a sibling temp file and fsynced, then
// renamed into place, so a concurrent reader never observes a partial
// write. The rename is the durability point the rest of the system relies
// on as a filesystem-backed mutex (see the Decrypting transition).
func Write(path string, l Layer) error {
	body, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("layer: marshal %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".layer-*.tmp")
	if err != nil {
		return fmt.Errorf("layer: create temp in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("layer: write temp %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("layer: sync temp %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("layer: close temp %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("layer: rename %s to %s: %w", tmpName, path, err)
	}
	return nil
}

// Find recursively scans root for a file ending in suffix whose contents
// parse to the given uuid, returning its path. Unparsable files along the
// way cause a logged-by-caller skip, not an abort.
func Find(root, suffix, uuid string, onParseError func(path string, err error)) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, suffix) {
			return nil
		}
		l, rerr := Read(path)
		if rerr != nil {
			if onParseError != nil {
				onParseError(path, rerr)
			}
			return nil
		}
		if l.UUID == uuid {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("layer: scan %s: %w", root, err)
	}
	if found == "" {
		return "", ErrNotFound
	}
	return found, nil
}

// List recursively scans root for all files ending in suffix and parses
// them into Layers, skipping (and reporting via onParseError) any file
// that fails to parse.
func List(root, suffix string, onParseError func(path string, err error)) ([]Layer, error) {
	var out []Layer
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, suffix) {
			return nil
		}
		l, rerr := Read(path)
		if rerr != nil {
			if onParseError != nil {
				onParseError(path, rerr)
			}
			return nil
		}
		out = append(out, l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("layer: scan %s: %w", root, err)
	}
	return out, nil
}
