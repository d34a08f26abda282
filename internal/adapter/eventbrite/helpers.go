package eventbrite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/oauth2"

	"github.com/theakshaypant/sched/internal/core"
	"github.com/theakshaypant/sched/internal/metrics"
)

// Eventbrite OAuth endpoints. Tokens issued here do not expire.
var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://www.eventbrite.com/oauth/authorize",
	TokenURL:  "https://www.eventbrite.com/oauth/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// OAuthConfig returns the OAuth2 configuration used by the auth command.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     Endpoint,
		RedirectURL:  redirectURL,
	}
}

// tokenFromFile reads an OAuth token from a JSON file.
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// networkError wraps a transport failure. Timeouts carry both sentinels.
func networkError(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %w: %w", core.ErrNetwork, core.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", core.ErrNetwork, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func resultFor(err error) string {
	if isTimeout(err) {
		return metrics.ResultTimeout
	}
	return metrics.ResultNetworkError
}
