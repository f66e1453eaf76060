package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dmateos/tagsync/internal/types"
	"github.com/dmateos/tagsync/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	serviceName        = "tagsync"
	clientSecretsFile  = "client_secret.json"
	tokenRefreshBuffer = 5 * time.Minute
)

// Manager handles credential acquisition, refresh, and persistent storage.
// The sync pipeline depends only on receiving a ready-to-use HTTP client.
type Manager struct {
	configDir   string
	storage     StorageBackend
	oauthConfig *oauth2.Config
	useKeyring  bool
}

// NewManager creates an auth manager, preferring the system keyring and
// falling back to file storage when no keyring is usable.
func NewManager(configDir string) *Manager {
	mgr := &Manager{configDir: configDir}

	if checkKeyringAvailable(serviceName) {
		mgr.storage = NewKeyringStorage(serviceName)
		mgr.useKeyring = true
	} else {
		mgr.storage = NewFileStorage(configDir)
	}

	return mgr
}

// StorageName reports which backend holds credentials
func (m *Manager) StorageName() string {
	return m.storage.Name()
}

// LoadOAuthConfig reads the OAuth2 client from client_secret.json in the
// config directory.
func (m *Manager) LoadOAuthConfig(scopes []string) error {
	path := filepath.Join(m.configDir, clientSecretsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return utils.NewAppError(utils.NewCLIError(utils.ErrCodeAuthRequired,
				fmt.Sprintf("OAuth client secrets not found at %s", path)).Build())
		}
		return err
	}

	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return utils.NewAppError(utils.NewCLIError(utils.ErrCodeAuthRequired,
			fmt.Sprintf("Invalid client secrets file: %v", err)).Build())
	}

	m.oauthConfig = cfg
	return nil
}

// OAuthConfig returns the loaded OAuth2 configuration, if any
func (m *Manager) OAuthConfig() *oauth2.Config {
	return m.oauthConfig
}

// SaveCredentials persists credentials for a profile
func (m *Manager) SaveCredentials(profile string, creds *types.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return m.storage.Save(profile, data)
}

// LoadCredentials retrieves stored credentials for a profile
func (m *Manager) LoadCredentials(profile string) (*types.Credentials, error) {
	data, err := m.storage.Load(profile)
	if err != nil {
		return nil, utils.NewAppError(utils.NewCLIError(utils.ErrCodeAuthRequired,
			fmt.Sprintf("No stored credentials for profile %q, run 'tagsync auth login'", profile)).Build())
	}

	var creds types.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, utils.NewAppError(utils.NewCLIError(utils.ErrCodeAuthRequired,
			"Stored credentials are corrupt, run 'tagsync auth login'").Build())
	}
	return &creds, nil
}

// DeleteCredentials removes stored credentials for a profile
func (m *Manager) DeleteCredentials(profile string) error {
	return m.storage.Delete(profile)
}

// GetValidCredentials loads credentials and refreshes them when the
// access token is expired or about to expire.
func (m *Manager) GetValidCredentials(ctx context.Context, profile string) (*types.Credentials, error) {
	creds, err := m.LoadCredentials(profile)
	if err != nil {
		return nil, err
	}

	if !creds.Expired(tokenRefreshBuffer) {
		return creds, nil
	}

	if creds.RefreshToken == "" || m.oauthConfig == nil {
		return nil, utils.NewAppError(utils.NewCLIError(utils.ErrCodeAuthExpired,
			"Access token expired and no refresh token available, run 'tagsync auth login'").Build())
	}

	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		Expiry:       creds.ExpiryDate,
	}
	refreshed, err := m.oauthConfig.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, utils.NewAppError(utils.NewCLIError(utils.ErrCodeAuthExpired,
			fmt.Sprintf("Token refresh failed: %v", err)).Build())
	}

	creds.AccessToken = refreshed.AccessToken
	if refreshed.RefreshToken != "" {
		creds.RefreshToken = refreshed.RefreshToken
	}
	creds.ExpiryDate = refreshed.Expiry

	if err := m.SaveCredentials(profile, creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// GetHTTPClient returns an authenticated HTTP client for the credentials
func (m *Manager) GetHTTPClient(ctx context.Context, creds *types.Credentials) *http.Client {
	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		Expiry:       creds.ExpiryDate,
	}
	if m.oauthConfig == nil {
		return oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	}
	return m.oauthConfig.Client(ctx, token)
}
