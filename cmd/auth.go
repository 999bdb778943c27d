package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"

	"github.com/mcptools/google-toolbox/internal/config"
	"github.com/mcptools/google-toolbox/internal/google"
)

const consentTimeout = 5 * time.Minute

func newAuthCmd() *cobra.Command {
	var (
		clientID     string
		clientSecret string
		listenAddr   string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Run the one-time OAuth consent flow and print a refresh token",
		Long: `Run the OAuth consent flow against Google and print the refresh token
the serve command needs.

A browser window must be opened on the URL this command prints; after
consent Google redirects to a local callback server and the resulting
refresh token is printed as environment variable assignments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" {
				clientID = os.Getenv(config.EnvClientID)
			}
			if clientSecret == "" {
				clientSecret = os.Getenv(config.EnvClientSecret)
			}
			if clientID == "" || clientSecret == "" {
				return fmt.Errorf("OAuth client is required: set --client-id and --client-secret or the %s and %s environment variables",
					config.EnvClientID, config.EnvClientSecret)
			}
			return runAuth(cmd.Context(), cmd, clientID, clientSecret, listenAddr)
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "Google OAuth client ID. Can also use GOOGLE_CLIENT_ID env var.")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "Google OAuth client secret. Can also use GOOGLE_CLIENT_SECRET env var.")
	cmd.Flags().StringVar(&listenAddr, "listen-addr", "127.0.0.1:0", "Local address for the OAuth callback listener")

	return cmd
}

type consentResult struct {
	code string
	err  error
}

func runAuth(ctx context.Context, cmd *cobra.Command, clientID, clientSecret, listenAddr string) error {
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("failed to start callback listener: %w", err)
	}
	defer func() { _ = listener.Close() }()

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     oauthgoogle.Endpoint,
		RedirectURL:  fmt.Sprintf("http://%s/callback", listener.Addr()),
		Scopes:       google.DefaultOAuthScopes,
	}

	state, err := randomState()
	if err != nil {
		return err
	}

	// AccessTypeOffline requests a refresh token; ApprovalForce makes
	// Google issue one even when the user consented before.
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	cmd.Println("Open the following URL in a browser and approve access:")
	cmd.Println()
	cmd.Println("  " + authURL)
	cmd.Println()

	results := make(chan consentResult, 1)
	httpServer := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/callback" {
				http.NotFound(w, r)
				return
			}
			if errMsg := r.URL.Query().Get("error"); errMsg != "" {
				results <- consentResult{err: fmt.Errorf("consent was denied: %s", errMsg)}
				http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
				return
			}
			if r.URL.Query().Get("state") != state {
				results <- consentResult{err: errors.New("state mismatch in OAuth callback")}
				http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
				return
			}
			results <- consentResult{code: r.URL.Query().Get("code")}
			_, _ = fmt.Fprintln(w, "Authorization complete. You can close this window.")
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() { _ = httpServer.Serve(listener) }()
	defer func() { _ = httpServer.Close() }()

	var res consentResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(consentTimeout):
		return fmt.Errorf("timed out after %s waiting for consent", consentTimeout)
	}
	if res.err != nil {
		return res.err
	}

	token, err := conf.Exchange(ctx, res.code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if token.RefreshToken == "" {
		return errors.New("Google did not return a refresh token; revoke the app's access at https://myaccount.google.com/permissions and retry")
	}

	cmd.Println("Authorization succeeded. Configure the server with:")
	cmd.Println()
	cmd.Printf("  export %s=%q\n", config.EnvClientID, clientID)
	cmd.Printf("  export %s=%q\n", config.EnvClientSecret, clientSecret)
	cmd.Printf("  export %s=%q\n", config.EnvRefreshToken, token.RefreshToken)

	return nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
