package options

import "time"

const (
	// DefaultDataDir is the base directory where redcask stores its
	// append-only log and rewrite staging files when no other directory is
	// specified.
	DefaultDataDir = "/var/lib/redcask"

	// DefaultPort is the TCP port the server listens on by default.
	DefaultPort = 6379

	// DefaultAppendFilename names the append-only log within DataDir.
	DefaultAppendFilename = "appendonly.aof"

	// DefaultAppendFsync is the fsync policy used when none is configured.
	DefaultAppendFsync = AppendFsyncEverysec

	// DefaultAppendFsyncInterval is the period between fsync calls under
	// the "everysec" policy.
	DefaultAppendFsyncInterval = time.Second

	// MinRewriteBufferSize is the smallest allowed rewrite buffer size (1MB).
	MinRewriteBufferSize uint64 = 1 * 1024 * 1024

	// MaxRewriteBufferSize is the largest allowed rewrite buffer size (512MB).
	MaxRewriteBufferSize uint64 = 512 * 1024 * 1024

	// DefaultRewriteBufferSize is the target rewrite buffer size (64MB).
	DefaultRewriteBufferSize uint64 = 64 * 1024 * 1024

	// DefaultRewriteBufferDirectory is the default subdirectory used to
	// stage a log rewrite before the atomic rename into place.
	DefaultRewriteBufferDirectory = "/var/lib/redcask"

	// DefaultRewriteBufferPrefix names the temporary file used while a
	// rewrite is in progress.
	DefaultRewriteBufferPrefix = "temp-rewriteaof"
)

// defaultOptions holds the default configuration settings for a redcask
// server instance.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	Port:                DefaultPort,
	AppendFilename:      DefaultAppendFilename,
	AppendFsync:         DefaultAppendFsync,
	AppendFsyncInterval: DefaultAppendFsyncInterval,
	RewriteBufferOptions: &rewriteBufferOptions{
		Size:      DefaultRewriteBufferSize,
		Directory: DefaultRewriteBufferDirectory,
		Prefix:    DefaultRewriteBufferPrefix,
	},
}

// NewDefaultOptions returns a fresh copy of the server's default options.
func NewDefaultOptions() Options {
	opts := defaultOptions
	rewriteCopy := *defaultOptions.RewriteBufferOptions
	opts.RewriteBufferOptions = &rewriteCopy
	return opts
}
