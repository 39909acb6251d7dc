package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/typed-time-tracker/internal/onedrive"
)

var syncDryRun bool

var onedriveCmd = &cobra.Command{
	Use:   "onedrive",
	Short: "Sync the working copy with the OneDrive app folder",
}

var onedriveLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a device code",
	Args:  cobra.NoArgs,
	RunE:  runOnedriveLogin,
}

var onedriveLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	Args:  cobra.NoArgs,
	RunE:  runOnedriveLogout,
}

var onedrivePullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace the working copy with the OneDrive document",
	Args:  cobra.NoArgs,
	RunE:  runOnedrivePull,
}

var onedrivePushCmd = &cobra.Command{
	Use:   "push",
	Short: "Replace the OneDrive document with the working copy",
	Args:  cobra.NoArgs,
	RunE:  runOnedrivePush,
}

func init() {
	onedrivePullCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print what would change without writing")
	onedrivePushCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print what would change without writing")
	onedriveCmd.AddCommand(onedriveLoginCmd, onedriveLogoutCmd, onedrivePullCmd, onedrivePushCmd)
}

func newAuth() (*onedrive.Auth, error) {
	path, err := onedrive.TokenFilePath()
	if err != nil {
		return nil, err
	}
	return onedrive.NewAuth(cfg.OneDrive.TenantID, cfg.OneDrive.ClientID, path), nil
}

// driveClient returns a client for the configured document. It fails with
// onedrive.ErrNotSignedIn rather than prompting.
func driveClient(ctx context.Context) (*onedrive.Client, error) {
	auth, err := newAuth()
	if err != nil {
		return nil, err
	}
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	return onedrive.NewClient(httpClient, cfg.OneDrive.FileName), nil
}

func runOnedriveLogin(cmd *cobra.Command, args []string) error {
	auth, err := newAuth()
	if err != nil {
		return err
	}
	if err := auth.Login(cmd.Context(), cmd.OutOrStdout()); err != nil {
		return err
	}
	client, err := driveClient(cmd.Context())
	if err != nil {
		return err
	}
	user, err := client.Me(cmd.Context())
	if err != nil {
		log.WithError(err).Warn("reading account")
		fmt.Fprintln(cmd.OutOrStdout(), "Signed in.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.DisplayName, user.UserPrincipalName)
	return nil
}

func runOnedriveLogout(cmd *cobra.Command, args []string) error {
	auth, err := newAuth()
	if err != nil {
		return err
	}
	if err := auth.Logout(); err != nil {
		return storageError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
	return nil
}

func runOnedrivePull(cmd *cobra.Command, args []string) error {
	client, err := driveClient(cmd.Context())
	if err != nil {
		return err
	}
	local, err := loadDocument()
	if err != nil {
		return err
	}
	doc, result, found, err := onedrive.Pull(cmd.Context(), client, local)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !found {
		fmt.Fprintf(out, "No %s in OneDrive yet (run: ttt onedrive push)\n", cfg.OneDrive.FileName)
		return nil
	}
	if syncDryRun {
		fmt.Fprintln(out, "Dry run: pulling would change the working copy:")
		onedrive.PrintResult(out, result)
		return nil
	}
	if err := store.SaveDocument(doc); err != nil {
		return storageError(err)
	}
	if err := store.SetFileName(cfg.OneDrive.FileName); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(out, "Pulled %s:\n", cfg.OneDrive.FileName)
	onedrive.PrintResult(out, result)
	return nil
}

func runOnedrivePush(cmd *cobra.Command, args []string) error {
	client, err := driveClient(cmd.Context())
	if err != nil {
		return err
	}
	local, err := loadDocument()
	if err != nil {
		return err
	}
	result, err := onedrive.Push(cmd.Context(), client, local, syncDryRun)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if syncDryRun {
		fmt.Fprintln(out, "Dry run: pushing would change OneDrive:")
	} else {
		fmt.Fprintf(out, "Pushed %s:\n", cfg.OneDrive.FileName)
	}
	onedrive.PrintResult(out, result)
	return nil
}
