package main

import (
	"context"
	"log/slog"
	"os"

	"gaia/internal/client"
	"gaia/internal/client/session"
	"gaia/internal/client/storage"
	"gaia/internal/errors"
	logs "gaia/internal/infra/log"

	"github.com/spf13/cobra"
)

const envAPIURL = "GAIA_API_URL"

// app carries what every subcommand needs. It is filled in by the root command's pre-run hook.
type app struct {
	apiURL    string
	storePath string
	verbose   bool

	logger  *slog.Logger
	api     *client.Client
	store   storage.Store
	session *session.Provider
}

// newRootCmd builds the command tree. A non-nil store replaces the session file, which tests rely on.
func newRootCmd(store storage.Store) *cobra.Command {
	a := &app{store: store}

	root := &cobra.Command{
		Use:   "gaiactl",
		Short: "Command-line client for the Gaia platform",
		Long: `gaiactl registers Gaia members and manages their session.

Run "gaiactl register" for the interactive sign-up wizard. The session token is
kept in $HOME/.gaia/session.yaml unless --store points elsewhere.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context(), cmd)
		},
	}

	apiURL := os.Getenv(envAPIURL)
	if apiURL == "" {
		apiURL = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", apiURL, "Gaia API base URL (env "+envAPIURL+")")
	root.PersistentFlags().StringVar(&a.storePath, "store", "", "session file (default $HOME/.gaia/session.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newMeCmd(a),
		newTokenCmd(a),
		newCharterCmd(a),
		newLocationCmd(a),
		newCheckEmailCmd(a),
		newCountriesCmd(a),
	)

	return root
}

func (a *app) init(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a.logger = logs.NewCLI(cmd.ErrOrStderr(), a.verbose)

	if a.store == nil {
		path := a.storePath
		if path == "" {
			var err error
			if path, err = storage.DefaultPath(); err != nil {
				return err
			}
		}
		a.store = storage.NewFileStore(path)
	}

	a.api = client.New(a.apiURL, client.WithLogger(a.logger))
	a.session = session.NewProvider(a.api, a.store, a.logger)

	// An unreachable server keeps the stored token; commands that need the profile retry on their own.
	if err := a.session.Init(ctx); err != nil {
		a.logger.Warn("Could not verify stored session", slog.Any("error", err))
	}

	return nil
}

// requireSession returns the signed-in user, fetching the profile again when the last attempt failed.
func (a *app) requireSession(ctx context.Context) (*client.User, error) {
	switch a.session.State() {
	case session.StateAuthenticated:
		return a.session.User(), nil
	case session.StateUnverified:
		return a.session.RefreshUser(ctx)
	default:
		return nil, errors.New(`not signed in: run "gaiactl login" or "gaiactl register"`)
	}
}
