package unitmenu

import (
	"strings"
)

// Action represents one operation from the fixed set a session can dispatch
// against a unit
type Action int

const (
	// ActionShow displays the unit's loaded properties in a terminal
	ActionShow Action = iota
	// ActionRestart restarts the unit silently in the background
	ActionRestart
	// ActionStart starts the unit silently in the background
	ActionStart
	// ActionStop stops the unit silently in the background
	ActionStop
	// ActionStatus shows the unit's runtime status in a terminal, paged
	ActionStatus
	// ActionLogs shows the unit's journal newest-first in a terminal, paged
	ActionLogs
	// ActionEnable enables the unit silently in the background
	ActionEnable
	// ActionDisable disables the unit silently in the background
	ActionDisable
)

// Action display names offered by the action picker
const (
	actionShowStr    = "Show"
	actionRestartStr = "Restart"
	actionStartStr   = "Start"
	actionStopStr    = "Stop"
	actionStatusStr  = "Status"
	actionLogsStr    = "Logs"
	actionEnableStr  = "Enable"
	actionDisableStr = "Disable"
)

// ExecMode selects how the process executor runs an action's command
type ExecMode int

const (
	// ExecPlain runs the command directly and waits for it
	ExecPlain ExecMode = iota
	// ExecTerminal runs the command inside a terminal emulator
	ExecTerminal
	// ExecTerminalShell joins the command into a single shell statement and
	// runs it inside a terminal emulator, for commands that pipe into a pager
	ExecTerminalShell
)

// String returns a human-readable name for the execution mode
func (m ExecMode) String() string {
	switch m {
	case ExecTerminal:
		return "terminal"
	case ExecTerminalShell:
		return "terminal-shell"
	default:
		return "plain"
	}
}

// Command is a fully resolved external invocation for one action against one
// unit. Argv is never shell-interpreted except in ExecTerminalShell mode,
// where the tokens are joined with single spaces into one shell statement.
type Command struct {
	// Argv is the program and its arguments
	Argv []string
	// Mode is how Argv must be executed
	Mode ExecMode
}

// Programs names the external management tools action commands invoke.
// Each entry is a program name resolved against PATH, or an absolute path.
type Programs struct {
	// Systemctl is the service manager control tool
	Systemctl string
	// Journalctl is the journal query tool
	Journalctl string
	// Pager receives status and log output in terminal-shell mode
	Pager string
}

// String returns the display name of the action
func (a Action) String() string {
	switch a {
	case ActionRestart:
		return actionRestartStr
	case ActionStart:
		return actionStartStr
	case ActionStop:
		return actionStopStr
	case ActionStatus:
		return actionStatusStr
	case ActionLogs:
		return actionLogsStr
	case ActionEnable:
		return actionEnableStr
	case ActionDisable:
		return actionDisableStr
	default:
		return actionShowStr
	}
}

// ActionNames returns the action display names in picker order.
func ActionNames() []string {
	return []string{
		actionShowStr,
		actionRestartStr,
		actionStartStr,
		actionStopStr,
		actionStatusStr,
		actionLogsStr,
		actionEnableStr,
		actionDisableStr,
	}
}

// ParseAction resolves a picker selection to an Action. Matching is
// case-insensitive and ignores surrounding whitespace; anything outside the
// action set fails with an *UnknownActionError carrying the raw selection.
func ParseAction(selection string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(selection)) {
	case "show":
		return ActionShow, nil
	case "restart":
		return ActionRestart, nil
	case "start":
		return ActionStart, nil
	case "stop":
		return ActionStop, nil
	case "status":
		return ActionStatus, nil
	case "logs":
		return ActionLogs, nil
	case "enable":
		return ActionEnable, nil
	case "disable":
		return ActionDisable, nil
	default:
		return ActionShow, &UnknownActionError{Name: selection}
	}
}

// Command builds the external command for the action against unit under
// scope. The scope flag is appended after the base arguments when scope is
// ScopeUser; system-scoped commands never carry it. Paged actions end with a
// pipe into prog.Pager and must be executed in ExecTerminalShell mode.
func (a Action) Command(unit string, scope Scope, prog Programs) Command {
	var argv []string
	mode := ExecPlain

	switch a {
	case ActionShow:
		argv = []string{prog.Systemctl, "show", unit}
		mode = ExecTerminal
	case ActionStatus:
		argv = []string{prog.Systemctl, "status", unit}
		mode = ExecTerminalShell
	case ActionLogs:
		argv = []string{prog.Journalctl, "--reverse", "--unit", unit}
		mode = ExecTerminalShell
	case ActionRestart:
		argv = []string{prog.Systemctl, "restart", unit}
	case ActionStart:
		argv = []string{prog.Systemctl, "start", unit}
	case ActionStop:
		argv = []string{prog.Systemctl, "stop", unit}
	case ActionEnable:
		argv = []string{prog.Systemctl, "enable", unit}
	case ActionDisable:
		argv = []string{prog.Systemctl, "disable", unit}
	}

	if scope == ScopeUser {
		argv = append(argv, UserFlag)
	}
	if mode == ExecTerminalShell {
		argv = append(argv, "|", prog.Pager)
	}
	return Command{Argv: argv, Mode: mode}
}
