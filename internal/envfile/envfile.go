// Package envfile edits KEY=value lines of a dotenv file in place.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// SetValue sets key to value in dotenv content. The first line assigning key,
// commented out or not, is replaced and later ones are dropped. If no line
// matches, the pair is appended.
func SetValue(content, key, value string) string {
	pattern := regexp.MustCompile(`^\s*#?\s*` + regexp.QuoteMeta(key) + `\s*=`)
	entry := key + "=" + value

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines)+1)
	replaced := false
	for _, line := range lines {
		if pattern.MatchString(line) {
			if !replaced {
				out = append(out, entry)
				replaced = true
			}
			continue
		}
		out = append(out, line)
	}
	if replaced {
		return strings.Join(out, "\n")
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + entry + "\n"
}

// UpdateFile applies SetValue to the file at path, keeping its mode.
// It returns false without error when the file does not exist.
func UpdateFile(path, key, value string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	updated := SetValue(string(data), key, value)
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
