package playstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	androidpublisher "google.golang.org/api/androidpublisher/v3"
	"google.golang.org/api/option"
)

const APIVersion = "v3"

type Config struct {
	CredentialsFile    string
	ServiceAccountJSON string
	Timeout            time.Duration
}

// ServiceAccount identifies the credentials the client authenticates with.
type ServiceAccount struct {
	ClientEmail string `json:"client_email"`
	ProjectID   string `json:"project_id"`
}

// Client wraps the Android Publisher API. All SDK types are converted to
// models types before leaving this package.
type Client struct {
	svc   *androidpublisher.Service
	creds *google.Credentials
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	creds, err := loadCredentials(ctx, cfg)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, creds.TokenSource)
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	svc, err := androidpublisher.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("androidpublisher.NewService: %w", err)
	}

	return &Client{svc: svc, creds: creds}, nil
}

func loadCredentials(ctx context.Context, cfg Config) (*google.Credentials, error) {
	var data []byte
	switch {
	case strings.TrimSpace(cfg.ServiceAccountJSON) != "":
		data = []byte(cfg.ServiceAccountJSON)
	case cfg.CredentialsFile != "":
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		data = b
	default:
		creds, err := google.FindDefaultCredentials(ctx, androidpublisher.AndroidpublisherScope)
		if err != nil {
			return nil, fmt.Errorf("find default credentials: %w", err)
		}
		return creds, nil
	}

	creds, err := google.CredentialsFromJSON(ctx, data, androidpublisher.AndroidpublisherScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return creds, nil
}

func (c *Client) Scopes() []string {
	return []string{androidpublisher.AndroidpublisherScope}
}

func (c *Client) ServiceAccount() ServiceAccount {
	var sa ServiceAccount
	if len(c.creds.JSON) > 0 {
		_ = json.Unmarshal(c.creds.JSON, &sa)
	}
	if sa.ProjectID == "" {
		sa.ProjectID = c.creds.ProjectID
	}
	return sa
}

// CheckAuth fetches an access token.
func (c *Client) CheckAuth(ctx context.Context) error {
	if _, err := c.creds.TokenSource.Token(); err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return toAuthorityError(fmt.Errorf("fetch token: %w", err), re.Response.StatusCode)
		}
		return toAuthorityError(fmt.Errorf("fetch token: %w", err), 0)
	}
	return nil
}
