package unitmenu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"pkt.systems/pslog"
)

// terminalEnv holds the overrides injected into terminal-attached commands
// so systemctl and journalctl keep color output when they detect a pipe.
var terminalEnv = map[string]string{
	"SYSTEMD_COLORS": "1",
	"LESS":           "-R",
}

// Runner executes the external management commands a session dispatches.
// Every run is synchronous: the call blocks until the child process tree
// exits, so nothing outlives the session.
type Runner interface {
	// RunPlain executes argv directly with the ambient environment
	RunPlain(ctx context.Context, argv []string) error
	// RunTerminal executes argv inside the terminal emulator at terminal
	RunTerminal(ctx context.Context, terminal string, argv []string) error
	// RunTerminalShell joins argv into one shell statement and executes it
	// inside the terminal emulator at terminal via shell
	RunTerminalShell(ctx context.Context, terminal, shell string, argv []string) error
}

// ProcRunner is the process-spawning Runner. Failures are reported once
// through its notifier and returned as *CommandError.
type ProcRunner struct {
	notifier Notifier
}

// NewProcRunner returns a ProcRunner reporting failures through notifier.
// A nil notifier disables failure notifications.
func NewProcRunner(notifier Notifier) *ProcRunner {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ProcRunner{notifier: notifier}
}

// RunPlain executes argv directly and waits for it. Stdout is discarded;
// plain commands are the silent mutating ones.
func (r *ProcRunner) RunPlain(ctx context.Context, argv []string) error {
	return r.run(ctx, argv, nil, "Command error", false)
}

// RunTerminal executes argv inside the terminal emulator at terminal using
// the -e command convention, with the color overrides applied.
func (r *ProcRunner) RunTerminal(ctx context.Context, terminal string, argv []string) error {
	full := make([]string, 0, len(argv)+2)
	full = append(full, terminal, "-e")
	full = append(full, argv...)
	return r.run(ctx, full, terminalEnv, "Terminal error", true)
}

// RunTerminalShell joins argv with single spaces into one shell statement
// and executes it inside the terminal emulator at terminal as
// "terminal -e shell -c statement", with the color overrides applied. This
// is the only place argv is ever shell-interpreted; it exists for commands
// that pipe into a pager.
func (r *ProcRunner) RunTerminalShell(ctx context.Context, terminal, shell string, argv []string) error {
	statement := strings.Join(argv, " ")
	full := []string{terminal, "-e", shell, "-c", statement}
	return r.run(ctx, full, terminalEnv, "Terminal error", true)
}

// run spawns argv, waits for it and folds a failure into a notified
// *CommandError
func (r *ProcRunner) run(ctx context.Context, argv []string, overrides map[string]string, headline string, terminal bool) error {
	log := pslog.Ctx(ctx)
	log.Debug("running command", "argv", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if len(overrides) > 0 {
		cmd.Env = mergeEnv(os.Environ(), overrides)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	cerr := &CommandError{
		Cmd:      argv,
		Status:   exitStatusOf(err),
		Stderr:   strings.TrimSpace(stderr.String()),
		Terminal: terminal,
		Err:      err,
	}
	log.Error("command failed",
		"argv", strings.Join(argv, " "),
		"status", cerr.Status,
		"stderr", cerr.Stderr)
	emit(ctx, r.notifier, Notification{
		Severity: SeverityError,
		Summary:  headline,
		Body:     commandFailureBody(cerr),
	})
	return cerr
}

// commandFailureBody renders the notification body for a failed command
func commandFailureBody(e *CommandError) string {
	if e.Status < 0 {
		return fmt.Sprintf("%s could not be started: %v", e.Cmd[0], e.Err)
	}
	body := fmt.Sprintf("%s exited with code %d", e.Cmd[0], e.Status)
	if e.Stderr != "" {
		body += ": " + e.Stderr
	}
	return body
}

// exitStatusOf extracts the process exit status from an exec error, or -1
// when the process never ran
func exitStatusOf(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// mergeEnv returns base with overrides applied: an entry whose key is
// overridden is replaced in place, keys missing from base are appended in
// sorted order. base is never modified.
func mergeEnv(base []string, overrides map[string]string) []string {
	merged := make([]string, 0, len(base)+len(overrides))
	if len(overrides) == 0 {
		return append(merged, base...)
	}

	pending := make(map[string]string, len(overrides))
	for k, v := range overrides {
		pending[k] = v
	}
	for _, kv := range base {
		key := kv
		if i := strings.IndexByte(kv, '='); i >= 0 {
			key = kv[:i]
		}
		if v, ok := pending[key]; ok {
			merged = append(merged, key+"="+v)
			delete(pending, key)
			continue
		}
		merged = append(merged, kv)
	}

	rest := make([]string, 0, len(pending))
	for k := range pending {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		merged = append(merged, k+"="+pending[k])
	}
	return merged
}
