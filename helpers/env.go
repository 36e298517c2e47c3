package helpers

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvString returns the trimmed value of the environment variable name, or def when it is unset or blank.
func EnvString(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

// EnvInt parses the environment variable name as an integer, returning def when it is unset or blank.
func EnvInt(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, v)
	}
	return n, nil
}

// EnvFloat parses the environment variable name as a float, returning def when it is unset or blank.
func EnvFloat(name string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, v)
	}
	return f, nil
}

// MaxMillis is the largest millisecond count a time.Duration can hold.
const MaxMillis = math.MaxInt64 / int64(time.Millisecond)

// Millis converts a millisecond count read from name into a time.Duration, rejecting counts that overflow it.
func Millis(name string, ms int) (time.Duration, error) {
	if int64(ms) > MaxMillis || int64(ms) < -MaxMillis {
		return 0, fmt.Errorf("%s must not exceed %d, got %d", name, MaxMillis, ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// EnvMillis reads a millisecond count from name. def is returned when it is unset or blank.
func EnvMillis(name string, def time.Duration) (time.Duration, error) {
	n, err := EnvInt(name, int(def.Milliseconds()))
	if err != nil {
		return 0, err
	}
	return Millis(name, n)
}

// LoadYAML reads the YAML file at path (made absolute first) into out.
func LoadYAML(path string, out any) error {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ValidPort reports an error unless port is within 1-65535.
func ValidPort(name string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be 1-65535, got %d", name, port)
	}
	return nil
}
