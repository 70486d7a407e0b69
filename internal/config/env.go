package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// LoadEnvFile loads KEY=value pairs from an env file into the process
// environment, so a scheduled runner can keep its settings next to the
// checkout instead of in the unit file. An empty path means TV_MIX_ENV_FILE,
// falling back to ".env" in the working directory. A missing file is fine;
// the environment is then used as-is.
//
// Lines may carry an "export " prefix so the same file can also be sourced by
// a shell. Blank lines and # comments are skipped; values may be single- or
// double-quoted.
func LoadEnvFile(path string) error {
	if path == "" {
		path = os.Getenv("TV_MIX_ENV_FILE")
	}
	if path == "" {
		path = ".env"
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		os.Setenv(key, unquote(strings.TrimSpace(value)))
	}
	return sc.Err()
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
