package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/viewmim/archivectl/internal/session"
)

// ErrNoPassword is returned when login cannot obtain a password.
var ErrNoPassword = errors.New("no password: use --password-stdin when input is not a terminal")

// readLine reads one line from r without its line ending.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// NewLoginCmd creates the login command. The access token is stored per API
// base URL under the credentials directory.
func NewLoginCmd() *cobra.Command {
	var (
		username      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as an administrator",
		Example: `  archivectl login --username admin
  echo "$ARCHIVE_PASSWORD" | archivectl login --username admin --password-stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			interactive := interactiveInput(cmd)

			username = strings.TrimSpace(username)
			if username == "" {
				if !interactive {
					return errors.New("--username is required when input is not a terminal")
				}
				fmt.Fprint(cmd.ErrOrStderr(), "Username: ")
				if username, err = readLine(in); err != nil {
					return fmt.Errorf("reading username: %w", err)
				}
				username = strings.TrimSpace(username)
			}

			var password string
			switch {
			case passwordStdin:
				if password, err = readLine(in); err != nil {
					return fmt.Errorf("reading password: %w", err)
				}
			case interactive:
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				raw, readErr := term.ReadPassword(int(in.(*os.File).Fd()))
				fmt.Fprintln(cmd.ErrOrStderr())
				if readErr != nil {
					return fmt.Errorf("reading password: %w", readErr)
				}
				password = string(raw)
			default:
				return ErrNoPassword
			}
			if password == "" {
				return ErrNoPassword
			}

			ctx := cmd.Context()
			tok, err := a.client.Login(ctx, username, password)
			if err != nil {
				return err
			}

			cred, err := a.store.Save(a.cfg.API.BaseURL, tok.AccessToken)
			if err != nil {
				return err
			}
			logger.Info().Ctx(ctx).Str("api", cred.BaseURL).Str("subject", cred.Subject).Msg("logged in")

			cmd.Printf("%s on %s\n", session.FromCredential(cred).Describe(), cred.BaseURL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from standard input")
	return cmd
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored login for the configured API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err = a.store.Delete(a.cfg.API.BaseURL); err != nil {
				return err
			}
			cmd.Println("Logged out")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			cmd.Printf("%s\nAPI: %s\n", a.caps.Describe(), a.client.BaseURL())
			return nil
		},
	}
}
