// Package profile provides optional runtime profiling for the sigil
// application.
//
// The package integrates [github.com/pkg/profile] behind the "pprof"
// build tag. When built without the tag (the default), every operation
// is a no-op with zero runtime overhead.
//
// Supported modes with the tag enabled: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, trace. Use [Modes] to retrieve
// the list programmatically.
//
//	cfg := profile.WithMode("cpu")(profile.Config(func() (string, string, bool) {
//	    return "", "", false
//	}))
//	defer cfg.Start().Stop()
//
// Profile files are written to the configured directory with names
// matching the profiling mode (e.g. cpu.pprof) and analyzed with
// go tool pprof.
package profile
