// Package options provides data structures and functions for configuring
// the redcask server. It defines the parameters that control the listening
// port, the append-only log's location and fsync policy, and the sizing of
// the rewrite buffer used during background compaction.
package options

import (
	"strings"
	"time"
)

// AppendFsyncPolicy selects how aggressively the durability engine calls
// fsync on the append-only log.
type AppendFsyncPolicy string

const (
	// AppendFsyncAlways calls fsync after every command is appended. Safest,
	// slowest.
	AppendFsyncAlways AppendFsyncPolicy = "always"

	// AppendFsyncEverysec fsyncs at most once per AppendFsyncInterval (one
	// second by default), checked from the event loop's periodic tick.
	// Default.
	AppendFsyncEverysec AppendFsyncPolicy = "everysec"

	// AppendFsyncNo leaves fsync scheduling to the operating system.
	AppendFsyncNo AppendFsyncPolicy = "no"
)

// rewriteBufferOptions describes the buffer that accumulates commands
// written while a background AOF rewrite is in flight, and where the
// rewritten log is staged.
type rewriteBufferOptions struct {
	// Size is the target capacity, in bytes, of the rewrite buffer. It is
	// validated and stored but the durability engine does not read it: the
	// rewrite buffer has no size bound and is written to the new log file
	// only when the rewrite is finalised.
	//
	//  - Default: 64MB
	//  - Maximum: 512MB
	//  - Minimum: 1MB
	Size uint64 `json:"rewriteBufferSize"`

	// Directory is where the rewritten log is staged before the atomic
	// rename over the live append-only file.
	//
	// Default: "/var/lib/redcask"
	Directory string `json:"directory"`

	// Prefix names the temporary file used while a rewrite is in progress.
	//
	// Default: "temp-rewriteaof"
	Prefix string `json:"prefix"`
}

// Options defines the configuration parameters for the redcask server.
type Options struct {
	// DataDir is the base path where the append-only log and its rewrite
	// staging files are stored.
	//
	// Default: "/var/lib/redcask"
	DataDir string `json:"dataDir"`

	// Port is the TCP port the server listens on.
	//
	// Default: 6379
	Port int `json:"port"`

	// AppendFilename names the append-only log file within DataDir.
	//
	// Default: "appendonly.aof"
	AppendFilename string `json:"appendFilename"`

	// AppendFsync selects the fsync policy applied to the append-only log.
	//
	// Default: "everysec"
	AppendFsync AppendFsyncPolicy `json:"appendFsync"`

	// AppendFsyncInterval is the period between fsync calls when AppendFsync
	// is "everysec".
	//
	// Default: 1s
	AppendFsyncInterval time.Duration `json:"appendFsyncInterval"`

	// RewriteBufferOptions configures the buffer used while BGREWRITEAOF is
	// in progress.
	RewriteBufferOptions *rewriteBufferOptions `json:"rewriteBufferOptions"`
}

// OptionFunc is a function type that modifies the server's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions applies a predefined set of default configuration
// values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.DataDir = opts.DataDir
		o.Port = opts.Port
		o.AppendFilename = opts.AppendFilename
		o.AppendFsync = opts.AppendFsync
		o.AppendFsyncInterval = opts.AppendFsyncInterval
		o.RewriteBufferOptions = opts.RewriteBufferOptions
	}
}

// WithDataDir sets the primary data directory for the server.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithPort sets the TCP port the server listens on.
func WithPort(port int) OptionFunc {
	return func(o *Options) {
		if port > 0 && port < 65536 {
			o.Port = port
		}
	}
}

// WithAppendFilename sets the name of the append-only log file.
func WithAppendFilename(filename string) OptionFunc {
	return func(o *Options) {
		filename = strings.TrimSpace(filename)
		if filename != "" {
			o.AppendFilename = filename
		}
	}
}

// WithAppendFsync sets the fsync policy for the append-only log. Invalid
// values are ignored and the current policy is kept.
func WithAppendFsync(policy AppendFsyncPolicy) OptionFunc {
	return func(o *Options) {
		switch policy {
		case AppendFsyncAlways, AppendFsyncEverysec, AppendFsyncNo:
			o.AppendFsync = policy
		}
	}
}

// WithAppendFsyncInterval sets the period between fsync calls under the
// "everysec" policy.
func WithAppendFsyncInterval(interval time.Duration) OptionFunc {
	return func(o *Options) {
		if interval > 0 {
			o.AppendFsyncInterval = interval
		}
	}
}

// WithRewriteBufferDir sets the directory where rewrite staging files live.
func WithRewriteBufferDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.RewriteBufferOptions.Directory = directory
		}
	}
}

// WithRewriteBufferPrefix sets the filename prefix used for the temporary
// rewrite file.
func WithRewriteBufferPrefix(prefix string) OptionFunc {
	return func(o *Options) {
		prefix = strings.TrimSpace(prefix)
		if prefix != "" {
			o.RewriteBufferOptions.Prefix = prefix
		}
	}
}

// WithRewriteBufferSize sets the target size of the rewrite buffer.
func WithRewriteBufferSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size >= MinRewriteBufferSize && size <= MaxRewriteBufferSize {
			o.RewriteBufferOptions.Size = size
		}
	}
}
