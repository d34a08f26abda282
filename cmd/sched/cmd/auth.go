package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"

	"github.com/theakshaypant/sched/internal/adapter/eventbrite"
	"github.com/theakshaypant/sched/internal/util"
)

const (
	redirectPort = "8085"
	redirectURL  = "http://localhost:" + redirectPort + "/callback"
	authTimeout  = 5 * time.Minute
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Eventbrite",
	Long: `Authenticate with Eventbrite using OAuth.

  1. Starts a local server to receive the OAuth callback
  2. Opens your browser to sign in with Eventbrite
  3. Saves the token for future use

Requires client_id and client_secret from your Eventbrite app settings, with
` + redirectURL + ` registered as its redirect URI. Not needed when api_key is set.`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, _ []string) error {
	clientID := viper.GetString("client_id")
	clientSecret := viper.GetString("client_secret")
	if clientID == "" || clientSecret == "" {
		return errors.New("client_id and client_secret must be configured\n\nAdd them to your profile config:\n  client_id: \"your-app-key\"\n  client_secret: \"your-client-secret\"")
	}

	tokenFile := expandPath(viper.GetString("token_file"))
	config := eventbrite.OAuthConfig(clientID, clientSecret, redirectURL)

	tok, err := getTokenViaLocalServer(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}

	if err := saveToken(tokenFile, tok); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	fmt.Println("\n✅ Authentication successful!")
	fmt.Printf("📁 Token saved to %s\n", tokenFile)
	fmt.Println("\nYou can now run 'sched' to see your organization's events.")

	return nil
}

func getTokenViaLocalServer(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "Authorization failed: state mismatch", http.StatusBadRequest)
			sendErr(errChan, errors.New("authorization failed: state mismatch"))
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			errMsg := r.URL.Query().Get("error")
			http.Error(w, "Authorization failed: "+errMsg, http.StatusBadRequest)
			sendErr(errChan, fmt.Errorf("authorization failed: %s", errMsg))
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, callbackPage)

		select {
		case codeChan <- code:
		default:
		}
	})

	server := &http.Server{Addr: ":" + redirectPort, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			sendErr(errChan, err)
		}
	}()
	defer server.Shutdown(context.Background())

	authURL := config.AuthCodeURL(state)

	fmt.Println("🔐 Opening browser for Eventbrite authorization...")
	fmt.Println()

	if err := util.OpenURL(authURL); err != nil {
		fmt.Println("⚠️  Couldn't open browser automatically.")
		fmt.Println("   Please open this URL manually:")
		fmt.Println(authURL)
	}

	fmt.Println("⏳ Waiting for authorization...")

	var code string
	select {
	case code = <-codeChan:
	case err := <-errChan:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(authTimeout):
		return nil, errors.New("timeout waiting for authorization")
	}

	tok, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	return tok, nil
}

func sendErr(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

const callbackPage = `
<!DOCTYPE html>
<html>
<head>
	<title>Authorization Successful</title>
	<style>
		body { font-family: -apple-system, sans-serif; display: flex;
		       justify-content: center; align-items: center; height: 100vh;
		       margin: 0; background: #1a1a1a; color: #fff; }
		.card { background: #2d2d2d; padding: 40px; border-radius: 12px;
		        box-shadow: 0 2px 10px rgba(0,0,0,0.3); text-align: center; }
		h1 { color: #EE5956; margin-bottom: 10px; }
		p { color: #a1a1aa; }
	</style>
</head>
<body>
	<div class="card">
		<h1>sched is authorized</h1>
		<p>You can close this window and return to the terminal.</p>
	</div>
</body>
</html>
`
