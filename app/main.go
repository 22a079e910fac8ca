// Package main is an entrypoint for application
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/Semior001/aidigest/app/cmd"
	"github.com/Semior001/aidigest/pkg/logx"
	"github.com/jessevdk/go-flags"
	"golang.org/x/exp/slog"
)

var opts struct {
	Collect cmd.Collect `command:"collect" description:"collect articles from configured feeds"`
	Analyze cmd.Analyze `command:"analyze" description:"score and filter collected articles"`
	Digest  cmd.Digest  `command:"digest" description:"render a markdown digest from filtered articles"`

	JSONLogs bool `long:"json-logs" env:"JSON_LOGS" description:"turn on json logs"`
	Debug    bool `long:"dbg" env:"DEBUG" description:"turn on debug mode"`
}

var version = "unknown"

func getVersion() string {
	v, ok := debug.ReadBuildInfo()
	if !ok || v.Main.Version == "(devel)" {
		return version
	}
	return v.Main.Version
}

func main() {
	fmt.Printf("aidigest, version: %s\n", getVersion())

	p := flags.NewParser(&opts, flags.Default)
	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		setupLog()

		if err := cmd.Execute(args); err != nil {
			slog.Error("failed to execute command", slog.Any("err", err))
			os.Exit(1)
		}

		return nil
	}

	// after failure command does not return non-zero code
	if _, err := p.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			slog.Error("failed to parse flags", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func setupLog() {
	handler := slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelInfo,
		ReplaceAttr: nil,
	}

	if opts.Debug {
		handler.Level = slog.LevelDebug
		handler.AddSource = true
	}

	var h slog.Handler
	if opts.JSONLogs {
		h = handler.NewJSONHandler(os.Stderr)
	} else {
		h = handler.NewTextHandler(os.Stderr)
	}

	lg := slog.New(&logx.Chain{
		Middleware: []logx.Middleware{logx.RunID()},
		Handler:    h,
	})
	slog.SetDefault(lg)
}
