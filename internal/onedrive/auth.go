package onedrive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// ErrNotSignedIn is returned when no usable token is stored.
var ErrNotSignedIn = errors.New("not signed in to OneDrive (run: ttt onedrive login)")

var requiredScopes = []string{
	"Files.ReadWrite.AppFolder",
	"User.Read",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// TokenFilePath returns ~/.ttt/auth/onedrive_tokens.json.
func TokenFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttt", "auth", "onedrive_tokens.json"), nil
}

// oauth2Config returns the oauth2.Config for Microsoft Graph using the
// provided tenant and client IDs.
func oauth2Config(tenantID, clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(tenantID, "devicecode"),
			TokenURL:      msEndpoint(tenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// Auth manages the stored token and the device code sign-in.
type Auth struct {
	cfg       *oauth2.Config
	tokenPath string
}

// NewAuth builds an Auth for the tenant and client, storing tokens at
// tokenPath.
func NewAuth(tenantID, clientID, tokenPath string) *Auth {
	return &Auth{cfg: oauth2Config(tenantID, clientID), tokenPath: tokenPath}
}

// loadToken loads a previously saved token from disk. It returns nil, nil
// when no token exists.
func (a *Auth) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", a.tokenPath, err)
	}
	return &tok, nil
}

// saveToken persists a token to disk.
func (a *Auth) saveToken(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(a.tokenPath), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := a.tokenPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, a.tokenPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// SignedIn reports whether a token that can be used or refreshed is stored.
func (a *Auth) SignedIn() bool {
	tok, err := a.loadToken()
	return err == nil && tok != nil && (tok.Valid() || tok.RefreshToken != "")
}

// Login runs the device code flow, printing the verification URL and code
// to out, and stores the resulting token.
func (a *Auth) Login(ctx context.Context, out io.Writer) error {
	resp, err := a.cfg.DeviceAuth(ctx)
	if err != nil {
		return fmt.Errorf("device auth request failed: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(out, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(out, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(out)

	tok, err := a.cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return fmt.Errorf("device authentication failed: %w", err)
	}
	return a.saveToken(tok)
}

// Logout deletes the stored token.
func (a *Auth) Logout() error {
	if err := os.Remove(a.tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// HTTPClient returns a client that authorises requests with the stored
// token and persists refreshed tokens. It never starts an interactive flow.
func (a *Auth) HTTPClient(ctx context.Context) (*http.Client, error) {
	tok, err := a.loadToken()
	if err != nil {
		return nil, err
	}
	if tok == nil || (!tok.Valid() && tok.RefreshToken == "") {
		return nil, ErrNotSignedIn
	}
	ts := a.cfg.TokenSource(ctx, tok)
	return oauth2.NewClient(ctx, &savingTokenSource{ts: ts, auth: a}), nil
}

// savingTokenSource wraps a TokenSource and persists refreshed tokens.
type savingTokenSource struct {
	ts   oauth2.TokenSource
	auth *Auth
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		// Best-effort save; ignore errors.
		_ = s.auth.saveToken(tok)
		s.last = tok.AccessToken
	}
	return tok, nil
}
