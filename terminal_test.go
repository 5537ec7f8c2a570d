package unitmenu

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolveTerminalOverride(t *testing.T) {
	dir := stubPath(t, "myterm", "xterm")
	t.Setenv(TerminalEnvVar, "myterm")

	path, err := ResolveTerminal(DefaultTerminals())
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "myterm") {
		t.Errorf("ResolveTerminal = %q, want %q", path, filepath.Join(dir, "myterm"))
	}
}

func TestResolveTerminalOverrideMissing(t *testing.T) {
	stubPath(t, "xterm")
	t.Setenv(TerminalEnvVar, "ghost-term")

	// An override naming an uninstalled program is a hard failure, not a
	// fallback to the candidate list.
	_, err := ResolveTerminal(DefaultTerminals())
	if !errors.Is(err, ErrNoTerminal) {
		t.Fatalf("error = %v, want ErrNoTerminal", err)
	}
}

func TestResolveTerminalCandidateOrder(t *testing.T) {
	dir := stubPath(t, "kitty", "xterm")

	path, err := ResolveTerminal(DefaultTerminals())
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "kitty") {
		t.Errorf("ResolveTerminal = %q, want kitty before xterm", path)
	}
}

func TestResolveTerminalCustomCandidates(t *testing.T) {
	dir := stubPath(t, "barterm", "xterm")

	path, err := ResolveTerminal([]string{"footerm", "barterm"})
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "barterm") {
		t.Errorf("ResolveTerminal = %q, want %q", path, filepath.Join(dir, "barterm"))
	}
}

func TestResolveTerminalNoneFound(t *testing.T) {
	stubPath(t)

	_, err := ResolveTerminal(nil)
	if !errors.Is(err, ErrNoTerminal) {
		t.Fatalf("error = %v, want ErrNoTerminal", err)
	}
}

func TestResolveShell(t *testing.T) {
	dir := stubPath(t, "sh")

	path, err := ResolveShell()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "sh") {
		t.Errorf("ResolveShell = %q, want %q", path, filepath.Join(dir, "sh"))
	}
}

func TestResolveShellMissing(t *testing.T) {
	stubPath(t)

	_, err := ResolveShell()
	if !errors.Is(err, ErrNoShell) {
		t.Fatalf("error = %v, want ErrNoShell", err)
	}
}
