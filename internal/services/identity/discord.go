package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/solhaven/astrocade/internal/model"
)

// Discord well-known endpoints
const (
	discordAuthURL    = "https://discord.com/oauth2/authorize"
	discordTokenURL   = "https://discord.com/api/oauth2/token"
	discordAPIBaseURL = "https://discord.com/api"
)

// DiscordConfig holds Discord OAuth application settings
type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string

	// Endpoint overrides, used by tests to point at a fake provider
	AuthURL    string
	TokenURL   string
	APIBaseURL string
}

// Discord implements Provider against the Discord OAuth2 API with the
// identify scope.
type Discord struct {
	oauth  oauth2.Config
	apiURL string
	logger *slog.Logger
}

// Ensure Discord implements Provider
var _ Provider = (*Discord)(nil)

// NewDiscord creates a Discord identity provider
func NewDiscord(cfg DiscordConfig, logger *slog.Logger) *Discord {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = discordAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = discordTokenURL
	}
	apiURL := cfg.APIBaseURL
	if apiURL == "" {
		apiURL = discordAPIBaseURL
	}

	return &Discord{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		apiURL: strings.TrimSuffix(apiURL, "/"),
		logger: logger.With(slog.String("component", "identity-discord")),
	}
}

// Name returns the provider's route segment
func (d *Discord) Name() string {
	return "discord"
}

// AuthCodeURL returns the Discord consent URL for a login attempt
func (d *Discord) AuthCodeURL(state string) string {
	return d.oauth.AuthCodeURL(state)
}

// discordUser is the /users/@me response shape
type discordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Exchange redeems an authorization code and fetches the user's profile
func (d *Discord) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := d.oauth.Exchange(ctx, code)
	if err != nil {
		d.logger.Error("code exchange failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: identity code exchange", model.ErrUpstream)
	}

	client := d.oauth.Client(ctx, token)
	resp, err := client.Get(d.apiURL + "/users/@me")
	if err != nil {
		d.logger.Error("profile fetch failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: identity profile fetch", model.ErrUpstream)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		d.logger.Error("profile fetch returned non-200", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: identity profile status %d", model.ErrUpstream, resp.StatusCode)
	}

	var user discordUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		d.logger.Error("profile response undecodable", slog.Any("error", err))
		return nil, fmt.Errorf("%w: decoding identity profile", model.ErrUpstream)
	}

	if user.ID == "" {
		return nil, fmt.Errorf("%w: identity profile missing id", model.ErrUpstream)
	}

	return &Profile{
		ID:       model.Identity(user.ID),
		Username: user.Username,
	}, nil
}
