package unitmenu

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/coreos/go-systemd/v22/dbus"
)

// writeScript writes an executable /bin/sh script into dir and returns its path.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// stubPath builds a directory of no-op executables, points PATH at it and
// clears the TERMINAL override, so terminal and shell resolution see exactly
// the named programs and nothing from the host.
func stubPath(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		writeScript(t, dir, name, "exit 0\n")
	}
	t.Setenv("PATH", dir)
	t.Setenv(TerminalEnvVar, "")
	return dir
}

// unitFiles builds manager unit-file entries from paths.
func unitFiles(paths ...string) []dbus.UnitFile {
	files := make([]dbus.UnitFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, dbus.UnitFile{Path: p, Type: "enabled"})
	}
	return files
}

// fakeConn is an in-memory ManagerConn.
type fakeConn struct {
	files  []dbus.UnitFile
	err    error
	lists  int
	closed int
}

func (c *fakeConn) ListUnitFilesContext(context.Context) ([]dbus.UnitFile, error) {
	c.lists++
	if c.err != nil {
		return nil, c.err
	}
	return c.files, nil
}

func (c *fakeConn) Close() { c.closed++ }

// scriptedPicker returns canned selections in order and records the options
// offered at each stage. Answers beyond the scripted ones read as cancel.
type scriptedPicker struct {
	answers []string
	errs    []error
	offered [][]string
}

func (p *scriptedPicker) Pick(_ context.Context, options []string) (string, error) {
	i := len(p.offered)
	p.offered = append(p.offered, append([]string(nil), options...))
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	if i < len(p.answers) {
		return p.answers[i], nil
	}
	return "", nil
}

// recordRunner captures dispatched commands without spawning anything.
type recordRunner struct {
	plain []([]string)
	term  []termCall
	shell []shellCall
	err   error
}

type termCall struct {
	terminal string
	argv     []string
}

type shellCall struct {
	terminal string
	shell    string
	argv     []string
}

func (r *recordRunner) RunPlain(_ context.Context, argv []string) error {
	r.plain = append(r.plain, argv)
	return r.err
}

func (r *recordRunner) RunTerminal(_ context.Context, terminal string, argv []string) error {
	r.term = append(r.term, termCall{terminal: terminal, argv: argv})
	return r.err
}

func (r *recordRunner) RunTerminalShell(_ context.Context, terminal, shell string, argv []string) error {
	r.shell = append(r.shell, shellCall{terminal: terminal, shell: shell, argv: argv})
	return r.err
}

func (r *recordRunner) calls() int {
	return len(r.plain) + len(r.term) + len(r.shell)
}

// recordNotifier captures notifications and optionally fails delivery.
type recordNotifier struct {
	notes []Notification
	err   error
}

func (r *recordNotifier) Notify(_ context.Context, n Notification) error {
	r.notes = append(r.notes, n)
	return r.err
}

// equalStrings reports whether two string slices are identical.
func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
