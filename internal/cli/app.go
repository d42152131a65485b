package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viewmim/archivectl/internal/archive"
	"github.com/viewmim/archivectl/internal/config"
	"github.com/viewmim/archivectl/internal/session"
)

// ErrAdminRequired is returned by mutating commands run without a valid login.
var ErrAdminRequired = errors.New("this command needs an admin login: run 'archivectl login' first")

// app bundles what a command needs to talk to the API. Capabilities are
// resolved once from the stored credential and passed down explicitly.
type app struct {
	cfg    *config.Config
	store  *session.Store
	caps   session.Capabilities
	client *archive.Client
}

// newApp builds the API client for the configured base URL, attaching the
// stored access token when one is held.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg := config.GetGlobalConfig()

	dir, err := config.GetCredentialsDir()
	if err != nil {
		return nil, err
	}
	store, err := session.NewStore(dir)
	if err != nil {
		return nil, err
	}

	caps := session.Anonymous
	var token string
	cred, err := store.Load(cfg.API.BaseURL)
	switch {
	case err == nil:
		caps = session.FromCredential(cred)
		token = cred.AccessToken
	case !errors.Is(err, session.ErrNoCredentials):
		logger.Warn().Ctx(cmd.Context()).Err(err).Msg("ignoring unreadable credential")
	}

	cliLogger := logger
	client, err := archive.New(archive.Config{
		BaseURL:           cfg.API.BaseURL,
		Token:             token,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		CacheEntries:      cfg.Cache.ThreadEntries,
		Logger:            &cliLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	return &app{cfg: cfg, store: store, caps: caps, client: client}, nil
}

// requireAdmin fails unless the user holds a valid admin login.
func (a *app) requireAdmin() error {
	if !a.caps.IsAdmin {
		return ErrAdminRequired
	}
	return nil
}

// explainAPIError adds a hint to errors the user can act on.
func explainAPIError(err error) error {
	var apiErr *archive.APIError
	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
		return fmt.Errorf("%w (the login may have expired: run 'archivectl login')", err)
	}
	return err
}
