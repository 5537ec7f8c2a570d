package unitmenu

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"
)

// UnitFileSuffix is the unit-definition suffix a path must carry to be
// offered in the unit picker.
const UnitFileSuffix = ".service"

// ManagerConn is the slice of the service manager's D-Bus API the unit
// directory consumes. *dbus.Conn satisfies it.
type ManagerConn interface {
	// ListUnitFilesContext returns all unit files known to the manager
	ListUnitFilesContext(ctx context.Context) ([]dbus.UnitFile, error)
	// Close releases the connection
	Close()
}

// Managers holds the system- and user-scoped manager connections for one
// session. Both are acquired up front so a scope selection can never fail on
// a lazy connect, and both must be released with Close on every exit path.
type Managers struct {
	// System is the connection to the system-wide manager
	System ManagerConn
	// User is the connection to the calling user's manager
	User ManagerConn
}

// ConnectManagers opens D-Bus connections to both the system and the user
// service manager. On any failure nothing is leaked and the error is
// returned unnotified; connection problems are infrastructure failures, not
// user-facing ones.
func ConnectManagers(ctx context.Context) (*Managers, error) {
	system, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting system manager: %w", err)
	}
	user, err := dbus.NewUserConnectionContext(ctx)
	if err != nil {
		system.Close()
		return nil, fmt.Errorf("connecting user manager: %w", err)
	}
	return &Managers{System: system, User: user}, nil
}

// Conn returns the connection bound to scope.
func (m *Managers) Conn(scope Scope) ManagerConn {
	if scope == ScopeUser {
		return m.User
	}
	return m.System
}

// Close releases both connections. It is safe to call on a nil or partially
// populated receiver.
func (m *Managers) Close() {
	if m == nil {
		return
	}
	if m.System != nil {
		m.System.Close()
	}
	if m.User != nil {
		m.User.Close()
	}
}

// ListUnits returns the identifiers of the units manageable through conn:
// the basename of every known unit file whose path ends in UnitFileSuffix.
// The manager's enumeration order is preserved and entries are not
// deduplicated; what the manager reports is what the picker shows.
func ListUnits(ctx context.Context, conn ManagerConn) ([]string, error) {
	files, err := conn.ListUnitFilesContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing unit files: %w", err)
	}
	units := make([]string, 0, len(files))
	for _, f := range files {
		if !strings.HasSuffix(f.Path, UnitFileSuffix) {
			continue
		}
		units = append(units, filepath.Base(f.Path))
	}
	return units, nil
}
