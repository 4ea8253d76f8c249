package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/landlease/internal/server/auth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type issuedToken struct {
	Account   string    `json:"account" yaml:"account"`
	Token     string    `json:"token" yaml:"token"`
	ExpiresAt time.Time `json:"expires_at" yaml:"expires_at"`
}

func (a *App) newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage access tokens",
	}
	cmd.AddCommand(a.newTokenIssueCommand())
	return cmd
}

func (a *App) newTokenIssueCommand() *cobra.Command {
	var (
		account  string
		secret   string
		validity time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign an access token with the server secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("LANDLEASE_SECRET_KEY")
			}
			if secret == "" {
				s, err := a.promptSecret()
				if err != nil {
					return err
				}
				secret = s
			}
			if secret == "" {
				return fmt.Errorf("secret key is required")
			}

			expires := time.Now().Add(validity)
			tok, err := auth.GenerateToken(account, []byte(secret), validity)
			if err != nil {
				return err
			}

			return a.render(issuedToken{Account: account, Token: tok, ExpiresAt: expires.UTC()}, func(w io.Writer) {
				fmt.Fprintln(w, tok)
			})
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account the token is issued to")
	cmd.Flags().StringVar(&secret, "secret", "", "HS256 secret (default $LANDLEASE_SECRET_KEY, prompted on a terminal)")
	cmd.Flags().DurationVar(&validity, "validity", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

// promptSecret asks for the secret without echo on a terminal and reads a
// line otherwise.
func (a *App) promptSecret() (string, error) {
	if f, ok := a.in.(*os.File); ok && isTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, "Secret key: ")
		b, err := readPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
