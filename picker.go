package unitmenu

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
	"pkt.systems/pslog"
)

// DefaultMenuCommand is the stock picker invocation used when none is
// configured.
const DefaultMenuCommand = "dmenu -i -l 20"

// Picker presents a list of options and returns the user's selection.
// An empty selection with a nil error means the user cancelled.
type Picker interface {
	Pick(ctx context.Context, options []string) (string, error)
}

// MenuPicker runs an external dmenu-compatible line picker: options go in on
// stdin, one per line, and the chosen line comes back on stdout.
type MenuPicker struct {
	argv     []string
	notifier Notifier
}

// NewMenuPicker parses command, a shell-quoted picker invocation such as
// "dmenu -i -l 20" or "rofi -dmenu -p unit", and returns a MenuPicker that
// reports picker failures through notifier. An empty command means
// DefaultMenuCommand; a nil notifier disables failure notifications.
func NewMenuPicker(command string, notifier Notifier) (*MenuPicker, error) {
	if strings.TrimSpace(command) == "" {
		command = DefaultMenuCommand
	}
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parsing menu command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("menu command %q names no program", command)
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &MenuPicker{argv: argv, notifier: notifier}, nil
}

// Program returns the picker executable name.
func (p *MenuPicker) Program() string {
	return p.argv[0]
}

// Pick presents options and returns the chosen line with surrounding
// whitespace trimmed, or "" when the user cancelled. A picker process that
// exits non-zero or cannot be started is reported once through the notifier
// and returned as a *PickerError.
func (p *MenuPicker) Pick(ctx context.Context, options []string) (string, error) {
	pslog.Ctx(ctx).Debug("running picker", "prog", p.argv[0], "options", len(options))

	cmd := exec.CommandContext(ctx, p.argv[0], p.argv[1:]...)
	cmd.Stdin = strings.NewReader(strings.Join(options, "\n"))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		perr := &PickerError{
			Cmd:    p.argv,
			Status: exitStatusOf(err),
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
		emit(ctx, p.notifier, Notification{
			Severity: SeverityError,
			Summary:  "Picker error",
			Body:     pickerFailureBody(perr),
		})
		return "", perr
	}
	return strings.TrimSpace(stdout.String()), nil
}

// pickerFailureBody renders the notification body for a failed picker run
func pickerFailureBody(e *PickerError) string {
	if e.Status < 0 {
		return fmt.Sprintf("%s could not be started: %v", e.Cmd[0], e.Err)
	}
	body := fmt.Sprintf("%s exited with code %d", e.Cmd[0], e.Status)
	if e.Stderr != "" {
		body += ": " + e.Stderr
	}
	return body
}
