package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func parseWithConfig(t *testing.T, cli any, yamlText string, args []string) {
	t.Helper()

	resolver, err := resolve(strings.NewReader(yamlText))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	parser, err := kong.New(cli, kong.Resolvers(resolver))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

// TestResolveHyphenAndUnderscoreKeys tests that config keys resolve with
// either separator.
func TestResolveHyphenAndUnderscoreKeys(t *testing.T) {
	var cli struct {
		LogLevel  string `name:"log-level"  default:"info"`
		LogFormat string `name:"log-format" default:"text"`
	}

	parseWithConfig(t, &cli, "log_level: debug\nlog-format: json\n", nil)

	if cli.LogLevel != "debug" {
		t.Errorf("log-level = %q, want %q", cli.LogLevel, "debug")
	}

	if cli.LogFormat != "json" {
		t.Errorf("log-format = %q, want %q", cli.LogFormat, "json")
	}
}

// TestResolveScalarConversion tests that numeric and boolean YAML values
// parse into typed flags.
func TestResolveScalarConversion(t *testing.T) {
	var cli struct {
		Count  int     `default:"0"`
		Ratio  float64 `default:"0"`
		Pretty bool    `default:"false"`
	}

	parseWithConfig(t, &cli, "count: 42\nratio: 2.5\npretty: true\n", nil)

	if cli.Count != 42 {
		t.Errorf("count = %d, want 42", cli.Count)
	}

	if cli.Ratio != 2.5 {
		t.Errorf("ratio = %v, want 2.5", cli.Ratio)
	}

	if !cli.Pretty {
		t.Error("pretty = false, want true")
	}
}

// TestResolveFlagsOverrideConfig tests that command-line flags win over
// config values.
func TestResolveFlagsOverrideConfig(t *testing.T) {
	var cli struct {
		LogLevel string `name:"log-level" default:"info"`
	}

	parseWithConfig(
		t, &cli, "log_level: debug\n", []string{"--log-level=warn"},
	)

	if cli.LogLevel != "warn" {
		t.Errorf("log-level = %q, want %q", cli.LogLevel, "warn")
	}
}

// TestResolveMalformedConfig tests that a broken config file falls back to
// flag defaults instead of failing.
func TestResolveMalformedConfig(t *testing.T) {
	var cli struct {
		LogLevel string `name:"log-level" default:"info"`
	}

	parseWithConfig(t, &cli, ": not [valid yaml\n", nil)

	if cli.LogLevel != "info" {
		t.Errorf("log-level = %q, want default %q", cli.LogLevel, "info")
	}
}
