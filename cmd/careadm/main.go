package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/curanet/careadm/cmd/careadm/console"
	"github.com/curanet/careadm/internal/api"
	"github.com/curanet/careadm/internal/keystore"
	"github.com/curanet/careadm/internal/residence"
	"github.com/curanet/careadm/internal/session"
	"github.com/curanet/careadm/pkg/config"
	"github.com/curanet/careadm/pkg/enums"
	"github.com/curanet/careadm/pkg/logger"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "careadm",
		Short:         "Terminal console for CuraNet facility administration",
		Long:          "careadm is the administrative console for CuraNet residential-care facilities:\nresidents, beds, task templates, and staff, scoped to the residences you manage.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConsole,
	}
	root.AddCommand(loginCmd(), logoutCmd(), useCmd(), themeCmd(), versionCmd())
	return root
}

// app bundles everything a command needs, built once per invocation.
type app struct {
	cfg       *config.Config
	logg      *logger.Logger
	logClose  func()
	store     *keystore.Store
	client    *api.Client
	session   *session.Holder
	residence *residence.Context
}

// bootstrap loads configuration and wires the client, session holder, and
// residence context. When fileLog is set the logger writes to the state
// directory instead of stderr, so the TUI owns the terminal.
func bootstrap(fileLog bool) (*app, error) {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	opts := logger.Options{ServiceName: "careadm", Level: logger.ParseLevel(cfg.App.LogLevel)}
	logg := logger.New(opts)
	logClose := func() {}
	if fileLog {
		fileLogger, closer, err := logger.NewFile(cfg.State.LogPath(), opts)
		if err != nil {
			return nil, err
		}
		logg = fileLogger
		logClose = func() { _ = closer.Close() }
	}

	store, err := keystore.Open(cfg.State.Path())
	if err != nil {
		logClose()
		return nil, err
	}

	client, err := api.NewClient(cfg.API, cfg.Breaker, logg)
	if err != nil {
		logClose()
		_ = store.Close()
		return nil, err
	}

	holder, err := session.NewHolder(store, client, logg)
	if err != nil {
		logClose()
		_ = store.Close()
		return nil, err
	}

	resCtx, err := residence.NewContext(store, client, logg)
	if err != nil {
		logClose()
		_ = store.Close()
		return nil, err
	}

	client.SetTokenSource(holder.Token)
	client.SetResidenceScope(resCtx.SelectedID)
	client.SetUnauthorizedHook(holder.Logout)

	return &app{
		cfg:       cfg,
		logg:      logg,
		logClose:  logClose,
		store:     store,
		client:    client,
		session:   holder,
		residence: resCtx,
	}, nil
}

func (a *app) close() {
	_ = a.store.Close()
	a.logClose()
}

func runConsole(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer a.close()

	pref, err := a.store.Get(keystore.KeyThemePreference)
	if err != nil {
		return err
	}
	theme, _ := enums.ParseTheme(pref)

	model, err := console.New(console.Params{
		Config:    a.cfg,
		Logger:    a.logg,
		Session:   a.session,
		Residence: a.residence,
		Backend:   a.client,
		Theme:     console.ThemeFor(theme),
	})
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	model.SetNotifier(program.Send)
	_, err = program.Run()
	return err
}

func loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer a.close()

			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "email: ")
				if _, err := fmt.Fscanln(cmd.InOrStdin(), &email); err != nil {
					return fmt.Errorf("reading email: %w", err)
				}
			}
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			if err := a.session.Login(cmd.Context(), api.LoginInput{Email: email, Password: password}); err != nil {
				return err
			}
			if err := a.session.Reconcile(cmd.Context()); err != nil {
				return err
			}
			if err := a.residence.Load(cmd.Context()); err != nil {
				return err
			}

			user := a.session.CurrentUser()
			if user != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", user.Email, user.Role)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "signed in")
			}
			if a.residence.NeedsSelection(a.session.Role()) {
				fmt.Fprintln(cmd.OutOrStdout(), "multiple residences visible, pick one with: careadm use <residence-id>")
				for _, r := range a.residence.Visible() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", r.ID, r.Name)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer a.close()

			a.session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func useCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <residence-id>",
		Short: "Select the residence to operate on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer a.close()

			if !a.session.IsAuthenticated() {
				return fmt.Errorf("not signed in, run: careadm login")
			}
			if err := a.residence.Load(cmd.Context()); err != nil {
				return err
			}
			for _, r := range a.residence.Visible() {
				if r.ID == args[0] {
					if err := a.residence.Select(r.ID); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "using %s\n", r.Name)
					return nil
				}
			}
			return fmt.Errorf("residence %q is not visible to this account", args[0])
		},
	}
}

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme <dark|light>",
		Short: "Persist the console color scheme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := enums.ParseTheme(args[0])
			if err != nil {
				return err
			}

			a, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Set(keystore.KeyThemePreference, string(theme)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", theme)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the careadm version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "careadm "+version)
		},
	}
}

func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "password: ")
	var password string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &password); err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return password, nil
}
