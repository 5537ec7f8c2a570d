package unitmenu

import (
	"fmt"
	"os"
	"os/exec"
)

// TerminalEnvVar names the environment variable consulted before the
// candidate list when resolving a terminal emulator.
const TerminalEnvVar = "TERMINAL"

// DefaultTerminals returns the terminal emulator candidates in resolution
// priority order. Every entry accepts the "-e command" convention.
func DefaultTerminals() []string {
	return []string{"alacritty", "kitty", "foot", "wezterm", "urxvt", "st", "xterm"}
}

// ResolveTerminal returns the path of the terminal emulator to wrap
// inspection commands in. The TERMINAL environment variable wins when set;
// otherwise the first of candidates present on PATH is used, with a nil or
// empty candidates slice meaning DefaultTerminals. ErrNoTerminal is returned
// when nothing resolves, including when the override names a program that is
// not installed.
func ResolveTerminal(candidates []string) (string, error) {
	if override := os.Getenv(TerminalEnvVar); override != "" {
		path, err := exec.LookPath(override)
		if err != nil {
			return "", fmt.Errorf("%w: $%s=%q is not on PATH", ErrNoTerminal, TerminalEnvVar, override)
		}
		return path, nil
	}
	if len(candidates) == 0 {
		candidates = DefaultTerminals()
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoTerminal
}

// ResolveShell returns the path of the POSIX shell used to execute pager
// pipelines, or ErrNoShell when none is installed.
func ResolveShell() (string, error) {
	path, err := exec.LookPath("sh")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoShell, err)
	}
	return path, nil
}
