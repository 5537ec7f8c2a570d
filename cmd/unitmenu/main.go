package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/axondata/unitmenu"
	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		// Cancelling a picker is a silent exit, not a reportable failure.
		if !errors.Is(err, unitmenu.ErrCancelled) {
			pslog.Ctx(ctx).With("err", err).Error("unitmenu failed")
		}
		return unitmenu.ExitCode(err)
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	var menu string
	var forceUser bool

	root := &cobra.Command{
		Use:           "unitmenu",
		Short:         "Pick a systemd unit and an action in dmenu, then run it",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd.Context(), cfgPath, menu, forceUser)
		},
	}
	root.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	root.Flags().StringVarP(&menu, "menu", "m", "", `picker command (default "`+unitmenu.DefaultMenuCommand+`")`)
	root.Flags().BoolVarP(&forceUser, "user", "u", false, "operate on the user manager without asking")

	root.AddCommand(newConfigCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func runSession(ctx context.Context, cfgPath, menu string, forceUser bool) error {
	cfg, err := unitmenu.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if menu != "" {
		cfg.Menu = menu
	}
	if forceUser {
		cfg.ForceUser = true
	}

	notifier, err := unitmenu.NewNotifier(cfg.Notify)
	if err != nil {
		return err
	}
	picker, err := unitmenu.NewMenuPicker(cfg.Menu, notifier)
	if err != nil {
		return err
	}

	managers, err := unitmenu.ConnectManagers(ctx)
	if err != nil {
		return err
	}
	defer managers.Close()

	session := unitmenu.NewSession(&cfg, managers, picker, unitmenu.NewProcRunner(notifier), notifier)
	return session.Run(ctx)
}
