package cli

import (
	"fmt"

	"github.com/dmateos/tagsync/internal/auth"
	"github.com/dmateos/tagsync/internal/config"
	"github.com/dmateos/tagsync/internal/utils"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google Drive authentication",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize access to Google Drive",
	Long: `Run the OAuth2 authorization flow in a browser and store the resulting
credentials for the selected profile. Requires client_secret.json in the
config directory.`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials for the selected profile",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status for the selected profile",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func newAuthManager() (*auth.Manager, error) {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	return auth.NewManager(configDir), nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	manager, err := newAuthManager()
	if err != nil {
		return err
	}
	if err := manager.LoadOAuthConfig(utils.ScopesSync); err != nil {
		return err
	}

	flow, err := auth.NewOAuthFlow(manager.OAuthConfig())
	if err != nil {
		return err
	}

	url := flow.AuthURL()
	fmt.Printf("Opening browser for authorization...\n\n%s\n\n", url)
	if err := auth.OpenBrowser(url); err != nil {
		fmt.Println("Could not open browser automatically; visit the URL above.")
	}

	creds, err := flow.Run(ctx)
	if err != nil {
		return utils.NewAppError(utils.NewCLIError(utils.ErrCodeAuthRequired,
			fmt.Sprintf("Authorization failed: %v", err)).Build())
	}

	profile := globalFlags.Profile
	if err := manager.SaveCredentials(profile, creds); err != nil {
		return err
	}

	fmt.Printf("Authorized profile %q (credentials stored in %s)\n", profile, manager.StorageName())
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	manager, err := newAuthManager()
	if err != nil {
		return err
	}

	profile := globalFlags.Profile
	if err := manager.DeleteCredentials(profile); err != nil {
		return err
	}

	fmt.Printf("Removed credentials for profile %q\n", profile)
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	manager, err := newAuthManager()
	if err != nil {
		return err
	}

	profile := globalFlags.Profile
	creds, err := manager.LoadCredentials(profile)
	if err != nil {
		fmt.Printf("Profile %q: not authenticated\n", profile)
		return nil
	}

	status := "valid"
	if creds.Expired(0) {
		status = "expired"
		if creds.RefreshToken != "" {
			status = "expired (refreshable)"
		}
	}

	fmt.Printf("Profile %q: %s\n", profile, status)
	fmt.Printf("  Storage: %s\n", manager.StorageName())
	if !creds.ExpiryDate.IsZero() {
		fmt.Printf("  Expires: %s\n", creds.ExpiryDate.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
