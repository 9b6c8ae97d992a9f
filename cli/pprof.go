//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pure/log"
	"github.com/ardnew/pure/pkg"
	"github.com/ardnew/pure/profile"
)

type pprofConfig struct {
	Mode  string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}" short:"p"`
	Dir   string `default:"${pprofDir}"                          help:"Profile output directory"                                 type:"path"`
	Quiet bool   `default:"true"                                 help:"Suppress profiler status messages"                        negatable:""`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      pkg.CachePath(profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start begins a profile of the selected mode and returns the function that
// writes it out. Without a mode nothing is profiled.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	p := profile.New(
		profile.WithMode(f.Mode),
		profile.WithDir(f.Dir),
		profile.WithQuiet(f.Quiet),
	)
	if p.Mode == "" {
		return func() {}
	}

	attrs := []slog.Attr{slog.String("mode", p.Mode), slog.String("dir", p.Dir)}

	log.DebugContext(ctx, "profiling started", attrs...)

	stopper := p.Start()

	return func() {
		stopper.Stop()
		log.DebugContext(ctx, "profile written", attrs...)
	}
}
