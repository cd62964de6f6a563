package anilist

import (
	"context"
	"fmt"

	"animehi.app/anime-api-gateway/app/utils/httpclients"
	"animehi.app/anime-api-gateway/config/environment_variables"
	"golang.org/x/oauth2"
	"resty.dev/v3"
)

const (
	authorizeURL = "https://anilist.co/api/v2/oauth/authorize"
	tokenURL     = "https://anilist.co/api/v2/oauth/token"
	graphqlURL   = "https://graphql.anilist.co"
)

var anilistRestyClient *resty.Client

func Init() {
	anilistRestyClient = httpclients.NewClient("AnilistClient")
	anilistRestyClient.SetBaseURL(graphqlURL)
}

// NewOAuthConfig builds the AniList OAuth2 code-exchange configuration.
func NewOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     environment_variables.EnvironmentVariables.ANILIST_CLIENT_ID,
		ClientSecret: environment_variables.EnvironmentVariables.ANILIST_CLIENT_SECRET,
		RedirectURL:  environment_variables.EnvironmentVariables.ANILIST_REDIRECT_URL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authorizeURL,
			TokenURL: tokenURL,
		},
	}
}

// Viewer is the authenticated AniList profile.
type Viewer struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type viewerResponse struct {
	Data struct {
		Viewer struct {
			ID     int    `json:"id"`
			Name   string `json:"name"`
			Avatar struct {
				Large string `json:"large"`
			} `json:"avatar"`
		} `json:"Viewer"`
	} `json:"data"`
}

const viewerQuery = `query { Viewer { id name avatar { large } } }`

// FetchViewer resolves the profile behind an AniList access token.
func FetchViewer(ctx context.Context, accessToken string) (*Viewer, error) {
	var result viewerResponse
	resp, err := anilistRestyClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"query": viewerQuery}).
		SetResult(&result).
		Post("")
	if err != nil {
		return nil, fmt.Errorf("anilist viewer request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("anilist viewer returned status %d", resp.StatusCode())
	}
	if result.Data.Viewer.ID == 0 {
		return nil, fmt.Errorf("anilist viewer response missing profile")
	}
	return &Viewer{
		ID:     result.Data.Viewer.ID,
		Name:   result.Data.Viewer.Name,
		Avatar: result.Data.Viewer.Avatar.Large,
	}, nil
}
