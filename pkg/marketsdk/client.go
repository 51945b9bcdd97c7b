package marketsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the market service. Public endpoints are
// methods on SDKClient; authenticated ones live on Session.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new market service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Session performs calls as the user owning token.
type Session struct {
	client *SDKClient
	token  string
}

// NewSession wraps a bearer token returned by Signup.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// Token returns the session's bearer token.
func (s *Session) Token() string { return s.token }
