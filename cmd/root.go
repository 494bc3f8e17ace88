/*
Copyright © 2026 DSM PiCK
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DSM-PICK/pick-cli/api"
	"github.com/DSM-PICK/pick-cli/config"
	"github.com/DSM-PICK/pick-cli/handlers"
	"github.com/DSM-PICK/pick-cli/menu"
	"github.com/DSM-PICK/pick-cli/session"
	"github.com/DSM-PICK/pick-cli/ui"
	"github.com/DSM-PICK/pick-cli/updater"
)

const (
	flagUpdate = "update"
	flagDebug  = "debug"
	flagServer = "server"
)

var exitFunc = os.Exit // mockable

// NewRootCmd builds the pick command reading from in and rendering to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var v *viper.Viper
	rootCmd := &cobra.Command{
		Use:           "pick",
		Short:         "DSM PiCK terminal client",
		Long:          `Interactive terminal client for the DSM PiCK school portal`,
		Version:       config.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if v, err = config.NewViper(); err != nil {
				return err
			}
			if err := v.BindPFlag(config.KeyDebug, cmd.Flags().Lookup(flagDebug)); err != nil {
				return err
			}
			return v.BindPFlag(config.KeyServerURL, cmd.Flags().Lookup(flagServer))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(v)
			if err != nil {
				return err
			}
			config.InitLogger(settings)
			update, _ := cmd.Flags().GetBool(flagUpdate)
			return run(cmd.Context(), settings, in, out, update)
		},
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("pick {{.Version}} (build %s, %s)\n", config.Build, config.Date))
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Hidden: true,
	})
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.Flags().BoolP(flagUpdate, "u", false, "Check for a newer version and install it")
	rootCmd.Flags().Bool(flagDebug, false, "Log diagnostics to stderr")
	rootCmd.Flags().String(flagServer, config.DefaultServerURL, "PiCK server base URL")
	return rootCmd
}

// Execute runs the root command and exits with its status. This is called by
// main.main().
func Execute() {
	err := NewRootCmd(os.Stdin, os.Stdout).ExecuteContext(context.Background())
	exitFunc(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, menu.ErrConnectivity):
		return 1
	default:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
}

func run(ctx context.Context, settings *config.Settings, in io.Reader, out io.Writer, update bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	screen := ui.NewScreen(out)
	prompter := newPrompter(in, out, screen)
	store := config.NewStore(settings.ConfigPath)
	checker := updater.New(settings, store, prompter, screen)

	stop := handleInterrupt(screen)
	defer stop()

	screen.Clear()
	if update {
		checker.CheckForUpdates(ctx, false)
		return nil
	}

	screen.Box(screen.Color().Cyan(screen.Color().Bold("🎓 DSM PiCK CLI")))
	checker.CheckForUpdatesQuietly(ctx)

	log.Debugf("server: %s, config: %s", settings.ServerURL, settings.ConfigPath)
	client := api.NewClient(settings.ServerURL, session.NewHolder(), nil)
	h := handlers.New(client, prompter, screen, store, checker)
	return menu.New(h).Run(ctx)
}

func newPrompter(in io.Reader, out io.Writer, screen *ui.Screen) ui.Prompter {
	if f, ok := in.(*os.File); ok {
		return ui.NewTerminal(f, out, screen)
	}
	return ui.NewReaderTerminal(in, out, screen)
}

// handleInterrupt says goodbye and exits cleanly on SIGINT or SIGTERM,
// whatever the session is doing.
func handleInterrupt(screen *ui.Screen) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	stopWatch := watchInterrupt(sigs, screen)
	return func() {
		signal.Stop(sigs)
		stopWatch()
	}
}

func watchInterrupt(sigs <-chan os.Signal, screen *ui.Screen) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigs:
			log.Debugf("received %s", sig)
			screen.Println()
			screen.Println(screen.Color().Yellow("👋 안녕히 가세요!"))
			exitFunc(0)
		case <-done:
		}
	}()
	return func() { close(done) }
}
