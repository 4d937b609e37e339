// Package profile provides optional runtime profiling for the tali
// interpreter.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag.
// When built without the tag (the default), every operation is a no-op
// with zero runtime overhead.
//
// Supported modes when built with the tag: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, trace. Use [Modes] to retrieve
// the list programmatically.
//
// Configuration uses functional options over a [Config]:
//
//	var cfg profile.Config = func() (string, string, bool) {
//		return "", "", false
//	}
//
//	cfg = profile.WithMode("cpu")(cfg)
//	cfg = profile.WithPath("/tmp/profiles")(cfg)
//	ctrl := cfg.Start()
//	defer ctrl.Stop()
//
// The tali command exposes this through --pprof-mode and --pprof-dir
// when built with the tag:
//
//	go build -tags pprof .
//	./tali --pprof-mode=cpu run fib.tali
//
// Profile files are written to the configured directory with names
// matching the mode (cpu.pprof, mem.pprof) and analyzed with the
// standard tooling:
//
//	go tool pprof ./tali /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
