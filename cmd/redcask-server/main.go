// Command redcask-server runs a standalone redcask instance: it loads the
// append-only log (if any), opens the listening socket, and serves RESP
// requests until SIGINT/SIGTERM or an unrecoverable error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamNilotpal/redcask/internal/aof"
	"github.com/iamNilotpal/redcask/internal/conn"
	"github.com/iamNilotpal/redcask/internal/dispatch"
	"github.com/iamNilotpal/redcask/internal/keyspace"
	"github.com/iamNilotpal/redcask/pkg/config"
	pkgerrors "github.com/iamNilotpal/redcask/pkg/errors"
	"github.com/iamNilotpal/redcask/pkg/logger"
	"github.com/iamNilotpal/redcask/pkg/options"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

func main() {
	app := &cli.App{
		Name:  "redcask-server",
		Usage: "an in-memory key-value store speaking RESP2",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a redcask configuration file"},
			&cli.IntFlag{Name: "port", Usage: "TCP port to listen on"},
			&cli.StringFlag{Name: "appendonly-file", Usage: "append-only log filename within --dir"},
			&cli.StringFlag{Name: "appendfsync", Usage: "fsync policy: always, everysec, or no"},
			&cli.StringFlag{Name: "dir", Usage: "data directory for the append-only log"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "redcask-server:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	opts, err := resolveOptions(c)
	if err != nil {
		return err
	}

	log := logger.New("redcask-server")
	defer log.Sync()

	ks := keyspace.New(&keyspace.Config{Logger: log})
	defer ks.Close()

	journal, err := aof.New(&aof.Config{Options: &opts, Logger: log})
	if err != nil {
		return fmt.Errorf("opening append-only log: %w", err)
	}

	runtime := &keyspace.RuntimeConfig{AppendFsync: journal.FsyncPolicy()}

	d := dispatch.New(&dispatch.Config{
		Keyspace: ks,
		Runtime:  runtime,
		Journal:  journal,
		Rewrite:  func() error { return journal.StartRewrite(ks) },
		Logger:   log,
	})

	log.Infow("loading append-only log", "path", opts.DataDir+"/"+opts.AppendFilename)
	if err := journal.Load(d.Replay); err != nil {
		closeErr := journal.Close()
		return fmt.Errorf("loading append-only log: %w", multierr.Append(err, closeErr))
	}

	srv, err := conn.New(&conn.Config{
		Port:       opts.Port,
		Dispatcher: d,
		Logger:     log,
		Tick:       journal.Tick,
	})
	if err != nil {
		closeErr := journal.Close()
		return multierr.Append(err, closeErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := srv.ListenAndServe(ctx)
	closeErr := journal.Close()
	if err := multierr.Append(serveErr, closeErr); err != nil {
		return err
	}

	log.Infow("shutdown complete")
	return nil
}

// resolveOptions layers CLI flags over an optional config file over the
// built-in defaults, in that ascending order of precedence, matching the
// way the teacher composes functional options over NewDefaultOptions.
func resolveOptions(c *cli.Context) (options.Options, error) {
	opts := options.NewDefaultOptions()

	if path := c.String("config"); path != "" {
		funcs, err := config.Parse(path)
		if err != nil {
			return opts, fmt.Errorf("parsing configuration file: %w", err)
		}
		for _, fn := range funcs {
			fn(&opts)
		}
	}

	if dir := c.String("dir"); dir != "" {
		options.WithDataDir(dir)(&opts)
	}
	if port := c.Int("port"); port != 0 {
		options.WithPort(port)(&opts)
	}
	if filename := c.String("appendonly-file"); filename != "" {
		options.WithAppendFilename(filename)(&opts)
	}
	if fsync := c.String("appendfsync"); fsync != "" {
		options.WithAppendFsync(options.AppendFsyncPolicy(fsync))(&opts)
	}

	switch opts.AppendFsync {
	case options.AppendFsyncAlways, options.AppendFsyncEverysec, options.AppendFsyncNo:
	default:
		return opts, pkgerrors.NewConfigurationValidationError("appendfsync",
			"must be one of always, everysec, no, got \""+string(opts.AppendFsync)+"\"")
	}

	return opts, nil
}
