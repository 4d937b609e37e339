// Package cli contains the command line interface for tali.
//
// # Usage
//
// Scripts run through the run command, which is also the default:
//
//	tali run script.tali
//	tali script.tali
//	echo 'print 1 + 2;' | tali run -
//
// The fmt command renders a script's syntax tree as an indented tree,
// JSON, or YAML:
//
//	tali fmt tree script.tali
//	tali fmt json script.tali
//	tali fmt yaml script.tali
//	tali fmt tokens script.tali
//
// The repl command starts an interactive session with completion and
// persistent history:
//
//	tali repl
//
// # Configuration
//
// Flags may be set in a config file under the user configuration
// directory (config.yaml or config.json). Command-line flags override
// config file values. The init command writes a starter config.yaml
// populated with the current flag values:
//
//	tali init
//	tali --log-level debug init --force
//
// # Logging Options
//
//   - --log-level: Set minimum log level (debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
