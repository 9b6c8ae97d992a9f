// Package profile provides optional runtime profiling using
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	pure --pprof-mode cpu exec -f greeting.txt
//	go tool pprof -http=: ~/.cache/pure/pprof/cpu.pprof
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// [Stopper].
package profile

// Tag is the build tag that enables profiling, also used as the name of the
// default output directory under the cache directory.
const Tag = `pprof`
