package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const (
	user         = "me"
	listPageSize = 100
)

// Client is an authenticated Gmail session capable of listing message IDs
// for a search query and fetching full message representations.
type Client struct {
	srv *gmail.Service
}

// NewClient runs the installed-app OAuth flow and builds a read-only Gmail
// service. A cached token at tokenPath is reused when present; otherwise the
// user is prompted to authorize in a browser and the token is saved for
// subsequent runs.
func NewClient(ctx context.Context, credentialsPath, tokenPath string) (*Client, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	httpClient, err := oauthClient(ctx, oauthConfig, tokenPath)
	if err != nil {
		return nil, err
	}
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return &Client{srv: srv}, nil
}

func oauthClient(ctx context.Context, config *oauth2.Config, tokenPath string) (*http.Client, error) {
	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = tokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, tok); err != nil {
			return nil, err
		}
	}
	return config.Client(ctx, tok), nil
}

func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)
	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}
	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// ListMessageIDs returns the IDs of all messages matching the search query,
// following continuation tokens until the listing is exhausted. IDs keep the
// provider's page order. An empty result is not an error.
func (c *Client) ListMessageIDs(ctx context.Context, query string) ([]string, error) {
	var ids []string
	pageToken := ""
	for {
		call := c.srv.Users.Messages.List(user).Q(query).MaxResults(listPageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Context(ctx).Do()
		if err != nil {
			return nil, &ProviderError{Op: "list", Status: statusOf(err), Err: err}
		}
		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
		}
		if resp.NextPageToken == "" {
			return ids, nil
		}
		pageToken = resp.NextPageToken
	}
}

// GetMessage fetches the complete representation of a single message,
// including headers and body parts.
func (c *Client) GetMessage(ctx context.Context, id string) (*gmail.Message, error) {
	msg, err := c.srv.Users.Messages.Get(user, id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, &ProviderError{Op: "get", MessageID: id, Status: statusOf(err), Err: err}
	}
	return msg, nil
}

// Verify checks the session end to end: it fetches the account profile and
// lists a single message. It returns the authenticated address and the
// total message count reported by the profile.
func (c *Client) Verify(ctx context.Context) (string, int64, error) {
	profile, err := c.srv.Users.GetProfile(user).Context(ctx).Do()
	if err != nil {
		return "", 0, &ProviderError{Op: "profile", Status: statusOf(err), Err: err}
	}
	if _, err := c.srv.Users.Messages.List(user).MaxResults(1).Context(ctx).Do(); err != nil {
		return "", 0, &ProviderError{Op: "list", Status: statusOf(err), Err: err}
	}
	return profile.EmailAddress, profile.MessagesTotal, nil
}
