// Package unitmenu implements an interactive, picker-driven controller for
// systemd units.
//
// A session walks through three selections in a dmenu-compatible picker
// (manager scope, then unit, then action) and executes exactly one external
// management command for the chosen triple:
//
//	cfg := unitmenu.DefaultConfig()
//
//	notifier, _ := unitmenu.NewNotifier(cfg.Notify)
//	picker, err := unitmenu.NewMenuPicker(cfg.Menu, notifier)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	managers, err := unitmenu.ConnectManagers(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer managers.Close()
//
//	session := unitmenu.NewSession(&cfg, managers, picker, unitmenu.NewProcRunner(notifier), notifier)
//	err = session.Run(ctx)
//	os.Exit(unitmenu.ExitCode(err))
//
// # Actions
//
// The action set is closed: Show, Restart, Start, Stop, Status, Logs, Enable
// and Disable. Each action maps to a fixed systemctl or journalctl command
// built by Action.Command. Mutating actions (start, stop, restart, enable,
// disable) run silently in the background; inspection actions (show, status,
// logs) open inside a terminal emulator, with status and logs piped through a
// pager.
//
// # Error Reporting
//
// Failures the user caused or can fix, such as a picker that crashed or a
// management command that exited non-zero, are reported as desktop
// notifications and returned as typed errors. Infrastructure
// failures (the D-Bus connection, unit enumeration) are returned unnotified
// for the caller to log. User cancellation (an empty picker result) is not
// an error condition: Run returns ErrCancelled and nothing is notified.
//
// ExitCode maps any error returned by Session.Run to the conventional
// process exit status, so a main function needs no knowledge of the error
// taxonomy.
//
// # Design Philosophy
//
// This package prioritizes:
//
//   - One command per session (no event loop; the process exits after a
//     single dispatch)
//   - Sequential execution (every child process is waited on; nothing
//     outlives the session)
//   - Type safety (closed Scope and Action enums, no string dispatch)
//   - Context-aware operations throughout
//
// All interactive I/O goes through external collaborators (the picker, the
// terminal emulator and the notification service), so the package itself
// stays headless and testable.
package unitmenu
