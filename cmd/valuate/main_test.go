package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParseCommand(t *testing.T) {
	t.Setenv("EXTRACT_MODE", "positional")
	page := filepath.Join("..", "..", "internal", "fragments", "testdata", "search_page.html")

	stdout, _, err := execute(t, "parse", page, "--make", "honda", "--model", "civic", "--keyed")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := "Year,Make,Model,Price,Mileage,Location\n" +
		"2012,Honda,Civic,5000,80000,\"Calgary, AB\"\n" +
		"2016,Honda,Civic,12000,96540,\"Okotoks, AB\"\n"
	if stdout != want {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}

func TestParseCommandRequiresFile(t *testing.T) {
	if _, _, err := execute(t, "parse", "missing.html", "--make", "honda", "--model", "civic"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestPromptCommand(t *testing.T) {
	stdout, _, err := execute(t, "prompt")
	if err != nil {
		t.Fatalf("prompt failed: %v", err)
	}
	if !strings.Contains(stdout, "vehicle_generation") || !strings.Contains(stdout, "price_analysis") {
		t.Fatalf("expected kinds to be listed, got %q", stdout)
	}

	stdout, _, err = execute(t, "prompt", "vehicle_generation", "--year", "2015", "--make", "honda", "--model", "civic")
	if err != nil {
		t.Fatalf("prompt failed: %v", err)
	}
	if !strings.Contains(stdout, "[system]") || !strings.Contains(stdout, "2015 honda civic") {
		t.Fatalf("unexpected prompt output:\n%s", stdout)
	}

	if _, _, err := execute(t, "prompt", "haiku"); err == nil {
		t.Fatalf("expected unknown kind to fail")
	}
}
