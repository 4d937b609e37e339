package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

func initContext(t *testing.T, confBase string) context.Context {
	t.Helper()

	var cli struct {
		Verbose bool   `help:"Enable verbose output"`
		Format  string `default:"text" help:"Output format"`
		Count   int    `default:"3"    help:"Number of items"`
	}

	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier: confBase,
	})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr bool
	}{
		{
			name:    "create_new_config",
			force:   false,
			setup:   nil,
			wantErr: false,
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("stale: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: false,
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("stale: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confBase := filepath.Join(t.TempDir(), "config")
			confPath := confBase + ".yaml"

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			ctx := initContext(t, confBase)

			initCmd := &Init{Force: tt.force}

			err := initCmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var config map[string]any
			if err := yaml.Unmarshal(content, &config); err != nil {
				t.Errorf("generated config is not valid YAML: %v", err)
			}
		})
	}
}

// TestInitBuildConfig tests that buildConfig collects flag values by name.
func TestInitBuildConfig(t *testing.T) {
	ctx := initContext(t, filepath.Join(t.TempDir(), "config"))

	initCmd := &Init{}
	config := initCmd.buildConfig(ctx)

	if got, ok := config["format"]; !ok || got != "text" {
		t.Errorf("config[format] = %v, want %q", got, "text")
	}

	if got, ok := config["count"]; !ok || got != 3 {
		t.Errorf("config[count] = %v, want 3", got)
	}

	// Unset booleans default to false and are still recorded.
	if got, ok := config["verbose"]; !ok || got != false {
		t.Errorf("config[verbose] = %v, want false", got)
	}
}

// TestFlagValue tests value normalization for the configuration file.
func TestFlagValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"bool", true, true},
		{"int", 42, 42},
		{"float", 1.5, 1.5},
		{"string", "text", "text"},
		{"empty_string", "", nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flagValue(tt.in); got != tt.want {
				t.Errorf("flagValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
