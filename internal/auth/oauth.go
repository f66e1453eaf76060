package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/dmateos/tagsync/internal/types"
	"golang.org/x/oauth2"
)

// OAuthFlow handles the interactive OAuth2 authorization-code flow with a
// local callback server, CSRF state, and PKCE.
type OAuthFlow struct {
	config       *oauth2.Config
	listener     net.Listener
	state        string
	codeVerifier string
	codeChan     chan string
	errChan      chan error
}

// NewOAuthFlow creates an OAuth flow bound to an ephemeral localhost port
func NewOAuthFlow(config *oauth2.Config) (*OAuthFlow, error) {
	if config == nil {
		return nil, fmt.Errorf("OAuth config not set")
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start callback listener: %w", err)
	}

	state, err := randomToken(32)
	if err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	verifier, err := randomToken(64)
	if err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}

	cfg := *config
	cfg.RedirectURL = fmt.Sprintf("http://%s/callback", listener.Addr().String())

	return &OAuthFlow{
		config:       &cfg,
		listener:     listener,
		state:        state,
		codeVerifier: verifier,
		codeChan:     make(chan string, 1),
		errChan:      make(chan error, 1),
	}, nil
}

// AuthURL returns the URL the user must visit to grant access
func (f *OAuthFlow) AuthURL() string {
	return f.config.AuthCodeURL(
		f.state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("code_challenge", codeChallengeS256(f.codeVerifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// Run serves the callback, waits for the authorization code, and exchanges
// it for credentials.
func (f *OAuthFlow) Run(ctx context.Context) (*types.Credentials, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", f.handleCallback)

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(f.listener); err != nil && err != http.ErrServerClosed {
			f.errChan <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	var code string
	select {
	case code = <-f.codeChan:
	case err := <-f.errChan:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := f.config.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", f.codeVerifier))
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	return &types.Credentials{
		Type:         types.AuthTypeOAuth,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiryDate:   token.Expiry,
		Scopes:       f.config.Scopes,
	}, nil
}

func (f *OAuthFlow) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("state") != f.state {
		http.Error(w, "State mismatch", http.StatusBadRequest)
		f.errChan <- fmt.Errorf("OAuth state mismatch")
		return
	}

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		http.Error(w, "Authorization denied", http.StatusForbidden)
		f.errChan <- fmt.Errorf("authorization denied: %s", errMsg)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		f.errChan <- fmt.Errorf("callback without authorization code")
		return
	}

	fmt.Fprintln(w, "Authorization complete. You can close this window.")
	f.codeChan <- code
}

// OpenBrowser attempts to open the URL in the default browser. Failure is
// not fatal; the caller prints the URL for manual use.
func OpenBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func codeChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
