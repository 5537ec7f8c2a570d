package unitmenu

import (
	"context"
	"fmt"

	"pkt.systems/pslog"
)

// sessionState is the transient selection record of one run. It is owned by
// the Session, passed by reference between stages and never outlives Run.
type sessionState struct {
	scope    Scope
	unit     string
	action   Action
	terminal string
	shell    string
}

// Session drives one interactive run: scope, unit and action selection
// followed by the dispatch of exactly one external command. A Session is
// strictly sequential and must not be shared across goroutines.
type Session struct {
	cfg      *Config
	managers *Managers
	picker   Picker
	runner   Runner
	notifier Notifier
}

// NewSession wires a session from its collaborators. The managers must stay
// open for the lifetime of the session; closing them remains the caller's
// responsibility.
func NewSession(cfg *Config, managers *Managers, picker Picker, runner Runner, notifier Notifier) *Session {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Session{
		cfg:      cfg,
		managers: managers,
		picker:   picker,
		runner:   runner,
		notifier: notifier,
	}
}

// Run executes the full selection flow and dispatches the chosen command.
// It returns nil only after a successful dispatch; every other outcome maps
// to a process exit status via ExitCode. Cancellation at any picker stage
// returns ErrCancelled without a notification.
func (s *Session) Run(ctx context.Context) error {
	st := &sessionState{}
	if err := s.selectScope(ctx, st); err != nil {
		return err
	}
	if err := s.selectUnit(ctx, st); err != nil {
		return err
	}
	if err := s.selectAction(ctx, st); err != nil {
		return err
	}
	return s.dispatch(ctx, st)
}

// selectScope resolves which manager the session talks to, either from the
// configuration or from the scope picker
func (s *Session) selectScope(ctx context.Context, st *sessionState) error {
	log := pslog.Ctx(ctx)

	if s.cfg.ForceUser {
		st.scope = ScopeUser
		log.Debug("scope forced", "scope", st.scope)
		return nil
	}

	choice, err := s.picker.Pick(ctx, ScopeOptions())
	if err != nil {
		return err
	}
	if choice == "" {
		log.Debug("scope selection cancelled")
		return ErrCancelled
	}

	scope, err := ParseScope(choice)
	if err != nil {
		emit(ctx, s.notifier, Notification{
			Severity: SeverityError,
			Summary:  "Unsupported service type!",
			Body:     fmt.Sprintf("%q is not a known service scope", choice),
		})
		return err
	}
	st.scope = scope
	log.Debug("scope selected", "scope", st.scope)
	return nil
}

// selectUnit enumerates the scoped manager's units and resolves the user's
// choice
func (s *Session) selectUnit(ctx context.Context, st *sessionState) error {
	log := pslog.Ctx(ctx)

	units, err := ListUnits(ctx, s.managers.Conn(st.scope))
	if err != nil {
		return err
	}
	log.Debug("units listed", "scope", st.scope, "count", len(units))

	choice, err := s.picker.Pick(ctx, units)
	if err != nil {
		return err
	}
	if choice == "" {
		log.Debug("unit selection cancelled")
		return ErrCancelled
	}
	st.unit = choice
	log.Debug("unit selected", "unit", st.unit)
	return nil
}

// selectAction resolves the user's choice from the fixed action set
func (s *Session) selectAction(ctx context.Context, st *sessionState) error {
	log := pslog.Ctx(ctx)

	choice, err := s.picker.Pick(ctx, ActionNames())
	if err != nil {
		return err
	}
	if choice == "" {
		log.Debug("action selection cancelled")
		return ErrCancelled
	}

	action, err := ParseAction(choice)
	if err != nil {
		emit(ctx, s.notifier, Notification{
			Severity: SeverityError,
			Summary:  "Unsupported action!",
			Body:     fmt.Sprintf("%q is not a known action", choice),
		})
		return err
	}
	st.action = action
	log.Debug("action selected", "action", st.action)
	return nil
}

// dispatch resolves the terminal and shell, builds the action's command and
// hands it to the runner per its execution mode
func (s *Session) dispatch(ctx context.Context, st *sessionState) error {
	terminal, err := ResolveTerminal(s.cfg.Terminals)
	if err != nil {
		emit(ctx, s.notifier, Notification{
			Severity: SeverityError,
			Summary:  "Terminal error",
			Body:     err.Error(),
		})
		return err
	}
	st.terminal = terminal

	shell, err := ResolveShell()
	if err != nil {
		emit(ctx, s.notifier, Notification{
			Severity: SeverityError,
			Summary:  "Shell error",
			Body:     err.Error(),
		})
		return err
	}
	st.shell = shell

	cmd := st.action.Command(st.unit, st.scope, s.cfg.Programs())
	pslog.Ctx(ctx).Info("dispatching",
		"action", st.action,
		"unit", st.unit,
		"scope", st.scope,
		"mode", cmd.Mode)

	switch cmd.Mode {
	case ExecTerminal:
		return s.runner.RunTerminal(ctx, st.terminal, cmd.Argv)
	case ExecTerminalShell:
		return s.runner.RunTerminalShell(ctx, st.terminal, st.shell, cmd.Argv)
	default:
		return s.runner.RunPlain(ctx, cmd.Argv)
	}
}
