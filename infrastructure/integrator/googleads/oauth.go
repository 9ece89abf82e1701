package googleads

import (
	"context"
	"net/http"

	"github.com/vfg2006/adsync-api/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuthProvider fala com o servidor OAuth do Google em nome das conexões
type OAuthProvider struct {
	config     *oauth2.Config
	httpClient *http.Client
}

func NewOAuthProvider(cfg *config.Config) *OAuthProvider {
	return &OAuthProvider{
		config: &oauth2.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			RedirectURL:  cfg.OAuth.RedirectURL,
			Scopes:       cfg.OAuth.Scopes,
			Endpoint:     google.Endpoint,
		},
	}
}

// WithEndpoint aponta o provider para outro servidor (testes, emuladores)
func (p *OAuthProvider) WithEndpoint(endpoint oauth2.Endpoint, httpClient *http.Client) *OAuthProvider {
	p.config.Endpoint = endpoint
	p.httpClient = httpClient
	return p
}

func (p *OAuthProvider) withClient(ctx context.Context) context.Context {
	if p.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

// AuthCodeURL pede acesso offline e consentimento forçado, senão o refresh token não vem
func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(p.withClient(ctx), code)
}

func (p *OAuthProvider) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	source := p.config.TokenSource(p.withClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	return source.Token()
}
