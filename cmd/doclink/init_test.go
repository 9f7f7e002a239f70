package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doclink/doclink/internal/config"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "init" {
			t.Errorf("expected use 'init', got %q", cmd.Use)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != configFileName {
			t.Errorf("expected default %q, got %q", configFileName, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
	})
}

// TestRunInitCmd tests configuration file generation.
func TestRunInitCmd(t *testing.T) {
	t.Run("creates config file in current directory", func(t *testing.T) {
		chdir(t, t.TempDir())

		cmd := NewInitCmd()
		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(configFileName)
		if err != nil {
			t.Fatalf("expected config file to exist: %v", err)
		}
		if !strings.Contains(string(content), "defaults:") {
			t.Errorf("expected template with defaults section, got:\n%s", content)
		}
		if !strings.Contains(string(content), "roots:") {
			t.Errorf("expected template with roots section, got:\n%s", content)
		}
	})

	t.Run("refuses to overwrite existing file", func(t *testing.T) {
		chdir(t, t.TempDir())

		if err := os.WriteFile(configFileName, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		if err := runInitCmd(cmd, nil); err == nil {
			t.Fatal("expected error for existing config file")
		}

		content, err := os.ReadFile(configFileName)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "existing" {
			t.Error("existing file must not be modified without --force")
		}
	})

	t.Run("force overwrites existing file", func(t *testing.T) {
		chdir(t, t.TempDir())

		if err := os.WriteFile(configFileName, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		if err := cmd.Flags().Set("force", "true"); err != nil {
			t.Fatal(err)
		}
		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(configFileName)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) == "existing" {
			t.Error("expected file to be overwritten with --force")
		}
	})

	t.Run("creates parent directories for output path", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)

		target := filepath.Join("config", "nested", "doclink.yaml")
		cmd := NewInitCmd()
		if err := cmd.Flags().Set("output", target); err != nil {
			t.Fatal(err)
		}
		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(target); err != nil {
			t.Errorf("expected config file at %s: %v", target, err)
		}
	})

	t.Run("generated file is loadable", func(t *testing.T) {
		chdir(t, t.TempDir())

		cmd := NewInitCmd()
		if err := runInitCmd(cmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := config.LoadConfigFile(configFileName); err != nil {
			t.Fatalf("expected generated config to parse: %v", err)
		}
	})
}
