// Package config parses the redcask server's line-oriented configuration
// file: one "key value" pair per line, blank lines and lines starting with
// "#" ignored. Parsed values are translated into a list of
// options.OptionFunc so a config file composes with CLI flags and the
// built-in defaults exactly the way the teacher composes
// WithDataDir/WithSegmentSize over NewDefaultOptions().
package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamNilotpal/redcask/pkg/errors"
	"github.com/iamNilotpal/redcask/pkg/options"
)

// Parse reads the configuration file at path and returns the OptionFuncs it
// describes, in file order. Unrecognized keys are silently skipped so a
// config file can carry forward-compatible settings without breaking older
// builds. A recognized key with a value outside its accepted range returns
// a wrapped validation error instead of being skipped, since a typo'd port
// or fsync mode is much more likely to be a mistake worth surfacing.
func Parse(path string) ([]options.OptionFunc, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path, filepathBase(path))
	}
	defer file.Close()

	var funcs []options.OptionFunc
	scanner := bufio.NewScanner(file)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		fn, err := optionFor(key, value)
		if err != nil {
			if ve, ok := errors.AsValidationError(err); ok {
				return nil, ve.WithDetail("line", lineNo).WithDetail("file", path)
			}
			return nil, err
		}
		if fn != nil {
			funcs = append(funcs, fn)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read configuration file").WithPath(path)
	}

	return funcs, nil
}

// splitKeyValue splits a "key value" line on the first space and trims
// surrounding whitespace from both halves; a tab does not separate them.
func splitKeyValue(line string) (key, value string, ok bool) {
	fields := strings.SplitN(line, " ", 2)
	if len(fields) == 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(fields[0]))
	if key == "" {
		return "", "", false
	}
	if len(fields) == 2 {
		value = strings.TrimSpace(fields[1])
	}
	return key, value, true
}

// optionFor translates one recognized config key into an options.OptionFunc.
// Unrecognized keys return (nil, nil) so the caller skips them silently.
func optionFor(key, value string) (options.OptionFunc, error) {
	switch key {
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 || port >= 65536 {
			return nil, errors.NewFieldRangeError(key, value, 1, 65535)
		}
		return options.WithPort(port), nil

	case "dir":
		if value == "" {
			return nil, errors.NewRequiredFieldError(key)
		}
		return options.WithDataDir(value), nil

	case "appendfilename":
		if value == "" {
			return nil, errors.NewRequiredFieldError(key)
		}
		return options.WithAppendFilename(value), nil

	case "appendfsync":
		switch options.AppendFsyncPolicy(value) {
		case options.AppendFsyncAlways, options.AppendFsyncEverysec, options.AppendFsyncNo:
			return options.WithAppendFsync(options.AppendFsyncPolicy(value)), nil
		default:
			return nil, errors.NewFieldFormatError(key, value, "one of always, everysec, no")
		}

	case "appendfsyncinterval":
		interval, err := time.ParseDuration(value)
		if err != nil {
			return nil, errors.NewFieldFormatError(key, value, "a Go duration string, e.g. \"1s\"")
		}
		if interval <= 0 {
			return nil, errors.NewFieldRangeError(key, value, "1ns", nil)
		}
		return options.WithAppendFsyncInterval(interval), nil

	default:
		return nil, nil
	}
}

// filepathBase returns the final path element without importing path/filepath
// for a single call site.
func filepathBase(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
