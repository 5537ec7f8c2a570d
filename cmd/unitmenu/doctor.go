package main

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/axondata/unitmenu"
	"pkt.systems/pslog"
)

func newDoctorCmd() *cobra.Command {
	var cfgPath string
	var notifyCheck bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the programs and connections unitmenu needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			problems := 0

			cfg, err := unitmenu.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			logger.Info("doctor start", "menu", cfg.Menu, "notify", cfg.Notify)

			picker, err := unitmenu.NewMenuPicker(cfg.Menu, unitmenu.NopNotifier{})
			if err != nil {
				logger.Error("menu command invalid", "menu", cfg.Menu, "err", err)
				problems++
			} else if path, err := exec.LookPath(picker.Program()); err != nil {
				logger.Error("picker not found", "prog", picker.Program(), "err", err)
				problems++
			} else {
				logger.Info("picker ok", "path", path)
			}

			if path, err := unitmenu.ResolveTerminal(cfg.Terminals); err != nil {
				logger.Error("no terminal emulator", "err", err)
				problems++
			} else {
				logger.Info("terminal ok", "path", path)
			}

			if path, err := unitmenu.ResolveShell(); err != nil {
				logger.Error("no POSIX shell", "err", err)
				problems++
			} else {
				logger.Info("shell ok", "path", path)
			}

			for _, prog := range []string{cfg.Systemctl, cfg.Journalctl, cfg.Pager} {
				if path, err := exec.LookPath(prog); err != nil {
					logger.Error("program not found", "prog", prog, "err", err)
					problems++
				} else {
					logger.Info("program ok", "path", path)
				}
			}

			if managers, err := unitmenu.ConnectManagers(cmd.Context()); err != nil {
				logger.Error("manager connection failed", "err", err)
				problems++
			} else {
				for _, scope := range []unitmenu.Scope{unitmenu.ScopeSystem, unitmenu.ScopeUser} {
					units, err := unitmenu.ListUnits(cmd.Context(), managers.Conn(scope))
					if err != nil {
						logger.Error("unit listing failed", "scope", scope, "err", err)
						problems++
						continue
					}
					logger.Info("manager ok", "scope", scope, "units", len(units))
				}
				managers.Close()
			}

			if notifyCheck {
				notifier, err := unitmenu.NewNotifier(cfg.Notify)
				if err != nil {
					return err
				}
				if err := notifier.Notify(cmd.Context(), unitmenu.Notification{
					Severity: unitmenu.SeverityInfo,
					Summary:  "unitmenu doctor",
					Body:     "notification delivery works",
				}); err != nil {
					logger.Error("notification delivery failed", "notify", cfg.Notify, "err", err)
					problems++
				} else {
					logger.Info("notifications ok", "notify", cfg.Notify)
				}
			}

			if problems > 0 {
				return fmt.Errorf("doctor found %d problem(s)", problems)
			}
			logger.Info("doctor complete")
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().BoolVar(&notifyCheck, "notify", true, "send a test notification")
	return cmd
}
