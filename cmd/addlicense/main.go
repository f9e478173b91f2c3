// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"go.astrophena.name/addlicense/cli"
	"go.astrophena.name/addlicense/header"
	"go.astrophena.name/addlicense/logger"
)

const usage = "Usage: addlicense [flags] <directory>"

func main() { cli.Main(new(app)) }

type app struct {
	config    string
	dry       bool
	jobs      int
	keepGoing bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.config, "config", "", "Read license text, extensions and exclusions from `file` (.txtar or .yaml).")
	fs.BoolVar(&a.dry, "dry", false, "Print the files that would have a license header added, without making changes.")
	fs.IntVar(&a.jobs, "jobs", 1, "Process up to `n` files concurrently.")
	fs.BoolVar(&a.keepGoing, "keep-going", false, "Report files that cannot be processed and continue with the rest.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if len(env.Args) != 1 {
		fmt.Fprintln(env.Stdout, usage)
		return fmt.Errorf("%w: want exactly one directory, got %d arguments", cli.ErrInvalidArgs, len(env.Args))
	}

	cfg := header.Default(env.Args[0])
	if a.config != "" {
		if err := cfg.Load(a.config); err != nil {
			return err
		}
	}
	cfg.DryRun = a.dry
	cfg.Jobs = a.jobs
	cfg.KeepGoing = a.keepGoing

	sum, err := header.Apply(ctx, cfg, func(r header.Result) {
		fmt.Fprintln(env.Stdout, progress(r, a.dry))
	})
	if sum != nil {
		logger.Info(ctx, "finished",
			slog.Int("added", sum.Count(header.Added)),
			slog.Int("present", sum.Count(header.Present)),
			slog.Bool("dry", a.dry),
		)
	}
	return err
}

func progress(r header.Result, dry bool) string {
	switch {
	case r.Outcome == header.Present:
		return "License already present in " + r.Path
	case dry:
		return "License would be added to " + r.Path
	default:
		return "License added to " + r.Path
	}
}
