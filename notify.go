package unitmenu

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/godbus/dbus/v5"
	"pkt.systems/pslog"
)

// Severity classifies a notification for urgency mapping
type Severity int

const (
	// SeverityInfo is informational, mapped to low urgency
	SeverityInfo Severity = iota
	// SeverityWarn is a recoverable problem, mapped to normal urgency
	SeverityWarn
	// SeverityError is a failed operation, mapped to critical urgency
	SeverityError
)

// urgency returns the freedesktop notification urgency hint for the severity
func (s Severity) urgency() byte {
	switch s {
	case SeverityWarn:
		return 1
	case SeverityError:
		return 2
	default:
		return 0
	}
}

// flag returns the notify-send urgency flag value for the severity
func (s Severity) flag() string {
	switch s {
	case SeverityWarn:
		return "normal"
	case SeverityError:
		return "critical"
	default:
		return "low"
	}
}

// Notification is one desktop notification request
type Notification struct {
	// Severity drives the urgency hint
	Severity Severity
	// Summary is the headline
	Summary string
	// Body is the detail text, may be empty
	Body string
}

// Notifier delivers desktop notifications. Delivery is best-effort
// throughout the package: a failing Notifier never aborts a session.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Notifier mode names accepted in configuration
const (
	// NotifyAuto tries the D-Bus sink first, then notify-send
	NotifyAuto = "auto"
	// NotifyDBus delivers over the session bus only
	NotifyDBus = "dbus"
	// NotifySend shells out to notify-send only
	NotifySend = "notify-send"
	// NotifyNone discards all notifications
	NotifyNone = "none"
)

// NewNotifier returns the notifier selected by mode. An empty mode means
// NotifyAuto.
func NewNotifier(mode string) (Notifier, error) {
	switch mode {
	case "", NotifyAuto:
		return FallbackNotifier{DBusNotifier{}, ExecNotifier{}}, nil
	case NotifyDBus:
		return DBusNotifier{}, nil
	case NotifySend:
		return ExecNotifier{}, nil
	case NotifyNone:
		return NopNotifier{}, nil
	default:
		return nil, fmt.Errorf("unknown notifier mode %q", mode)
	}
}

// Session bus coordinates of the freedesktop notification service
const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyCall   = "org.freedesktop.Notifications.Notify"
	notifyAppTag = "unitmenu"
)

// DBusNotifier delivers notifications to org.freedesktop.Notifications over
// the session bus.
type DBusNotifier struct{}

// Notify sends n and waits for the service's reply
func (DBusNotifier) Notify(ctx context.Context, n Notification) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connecting session bus: %w", err)
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(n.Severity.urgency()),
	}
	call := conn.Object(notifyDest, dbus.ObjectPath(notifyPath)).CallWithContext(
		ctx, notifyCall, 0,
		notifyAppTag, uint32(0), "", n.Summary, n.Body, []string{}, hints, int32(-1),
	)
	if call.Err != nil {
		return fmt.Errorf("notify call: %w", call.Err)
	}
	return nil
}

// ExecNotifier delivers notifications by running a notify-send compatible
// program.
type ExecNotifier struct {
	// Prog is the program to run; empty means DefaultNotifySend
	Prog string
}

// Notify runs the program and waits for it to exit
func (e ExecNotifier) Notify(ctx context.Context, n Notification) error {
	prog := e.Prog
	if prog == "" {
		prog = DefaultNotifySend
	}
	path, err := exec.LookPath(prog)
	if err != nil {
		return fmt.Errorf("notifier %s: %w", prog, err)
	}
	cmd := exec.CommandContext(ctx, path, "-u", n.Severity.flag(), "-a", notifyAppTag, n.Summary, n.Body)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notifier %s: %w", prog, err)
	}
	return nil
}

// FallbackNotifier tries each sink in order and stops at the first success.
type FallbackNotifier []Notifier

// Notify returns nil as soon as one sink delivers, otherwise the joined
// errors of every attempt
func (f FallbackNotifier) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, sink := range f {
		err := sink.Notify(ctx, n)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return errors.New("no notification sink configured")
	}
	return errors.Join(errs...)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

// Notify does nothing
func (NopNotifier) Notify(context.Context, Notification) error {
	return nil
}

// emit delivers n best-effort. Failures are logged and swallowed so a broken
// notification service can never abort a session.
func emit(ctx context.Context, sink Notifier, n Notification) {
	if sink == nil {
		return
	}
	if err := sink.Notify(ctx, n); err != nil {
		pslog.Ctx(ctx).Warn("notification delivery failed",
			"summary", n.Summary, "error", err)
	}
}
