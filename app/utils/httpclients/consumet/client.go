package consumet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"animehi.app/anime-api-gateway/app/domain/anime"
	"animehi.app/anime-api-gateway/app/utils/httpclients"
	"animehi.app/anime-api-gateway/config/environment_variables"
	"resty.dev/v3"
)

// The extraction layer lives behind a consumet-compatible HTTP API; every
// method here is a thin pass-through that hands back the upstream JSON.

var consumetRestyClient *resty.Client

func Init() {
	consumetRestyClient = httpclients.NewClient("ConsumetClient")
	consumetRestyClient.SetBaseURL(environment_variables.EnvironmentVariables.PROVIDER_API_URL)
}

func get(ctx context.Context, path string, query map[string]string) (json.RawMessage, error) {
	req := consumetRestyClient.R().SetContext(ctx)
	for k, v := range query {
		if v != "" {
			req.SetQueryParam(k, v)
		}
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, anime.ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("provider returned status %d for %s", resp.StatusCode(), path)
	}
	return json.RawMessage(resp.Bytes()), nil
}

func pageQuery(page, perPage int) map[string]string {
	q := map[string]string{}
	if page > 0 {
		q["page"] = strconv.Itoa(page)
	}
	if perPage > 0 {
		q["perPage"] = strconv.Itoa(perPage)
	}
	return q
}

// AnilistClient implements anime.MetaProvider against /meta/anilist.
type AnilistClient struct{}

func NewAnilistClient() anime.MetaProvider {
	return &AnilistClient{}
}

func (c *AnilistClient) Search(ctx context.Context, query string, page, perPage int) (json.RawMessage, error) {
	return get(ctx, "/meta/anilist/"+url.PathEscape(query), pageQuery(page, perPage))
}

func (c *AnilistClient) AdvancedSearch(ctx context.Context, params anime.AdvancedSearchParams) (json.RawMessage, error) {
	q := pageQuery(params.Page, params.PerPage)
	q["query"] = params.Query
	q["type"] = params.Type
	q["format"] = params.Format
	q["id"] = params.ID
	q["status"] = params.Status
	q["season"] = params.Season
	if params.Year > 0 {
		q["year"] = strconv.Itoa(params.Year)
	}
	if len(params.Sort) > 0 {
		sort, _ := json.Marshal(params.Sort)
		q["sort"] = string(sort)
	}
	if len(params.Genres) > 0 {
		genres, _ := json.Marshal(params.Genres)
		q["genres"] = string(genres)
	}
	return get(ctx, "/meta/anilist/advanced-search", q)
}

func (c *AnilistClient) Trending(ctx context.Context, page, perPage int) (json.RawMessage, error) {
	return get(ctx, "/meta/anilist/trending", pageQuery(page, perPage))
}

func (c *AnilistClient) Popular(ctx context.Context, page, perPage int) (json.RawMessage, error) {
	return get(ctx, "/meta/anilist/popular", pageQuery(page, perPage))
}

func (c *AnilistClient) Info(ctx context.Context, id string, provider string, dub, fetchFiller bool) (json.RawMessage, error) {
	q := map[string]string{"provider": provider}
	if dub {
		q["dub"] = "true"
	}
	if fetchFiller {
		q["fetchFiller"] = "true"
	}
	return get(ctx, "/meta/anilist/info/"+url.PathEscape(id), q)
}

func (c *AnilistClient) Data(ctx context.Context, id string) (json.RawMessage, error) {
	return get(ctx, "/meta/anilist/data/"+url.PathEscape(id), nil)
}

func (c *AnilistClient) Episodes(ctx context.Context, id string, provider string, dub, fetchFiller bool) (json.RawMessage, error) {
	q := map[string]string{"provider": provider}
	if dub {
		q["dub"] = "true"
	}
	if fetchFiller {
		q["fetchFiller"] = "true"
	}
	return get(ctx, "/meta/anilist/episodes/"+url.PathEscape(id), q)
}

func (c *AnilistClient) Watch(ctx context.Context, episodeID, provider, server string, dub bool) (json.RawMessage, error) {
	q := map[string]string{"provider": provider, "server": server}
	if dub {
		q["dub"] = "true"
	}
	return get(ctx, "/meta/anilist/watch/"+url.PathEscape(episodeID), q)
}

func (c *AnilistClient) Character(ctx context.Context, id string) (json.RawMessage, error) {
	return get(ctx, "/meta/anilist/character/"+url.PathEscape(id), nil)
}

func (c *AnilistClient) Staff(ctx context.Context, id string) (json.RawMessage, error) {
	return get(ctx, "/meta/anilist/staff/"+url.PathEscape(id), nil)
}

func (c *AnilistClient) AiringSchedule(ctx context.Context, page, perPage, weekStart, weekEnd int, notYetAired bool) (json.RawMessage, error) {
	q := pageQuery(page, perPage)
	if weekStart > 0 {
		q["weekStart"] = strconv.Itoa(weekStart)
	}
	if weekEnd > 0 {
		q["weekEnd"] = strconv.Itoa(weekEnd)
	}
	if notYetAired {
		q["notYetAired"] = "true"
	}
	return get(ctx, "/meta/anilist/airing-schedule", q)
}

func (c *AnilistClient) Genres(ctx context.Context, genres []string, page, perPage int) (json.RawMessage, error) {
	q := pageQuery(page, perPage)
	encoded, _ := json.Marshal(genres)
	q["genres"] = string(encoded)
	return get(ctx, "/meta/anilist/genre", q)
}

func (c *AnilistClient) RecentEpisodes(ctx context.Context, provider string, page, perPage int) (json.RawMessage, error) {
	q := pageQuery(page, perPage)
	q["provider"] = provider
	return get(ctx, "/meta/anilist/recent-episodes", q)
}

func (c *AnilistClient) Random(ctx context.Context) (json.RawMessage, error) {
	return get(ctx, "/meta/anilist/random-anime", nil)
}

func (c *AnilistClient) Servers(ctx context.Context, id, provider string) (json.RawMessage, error) {
	return get(ctx, "/meta/anilist/servers/"+url.PathEscape(id), map[string]string{"provider": provider})
}

// StreamingClient implements anime.StreamingProvider for one upstream
// (zoro or animekai), differing only in the route prefix.
type StreamingClient struct {
	basePath string
}

// ZoroClient and AnimekaiClient name the two streaming upstreams as distinct
// types so the injector can tell them apart.
type (
	ZoroClient     anime.StreamingProvider
	AnimekaiClient anime.StreamingProvider
)

func NewZoroClient() ZoroClient {
	return &StreamingClient{basePath: "/anime/zoro"}
}

func NewAnimekaiClient() AnimekaiClient {
	return &StreamingClient{basePath: "/anime/animekai"}
}

func (c *StreamingClient) path(parts ...string) string {
	return c.basePath + "/" + strings.Join(parts, "/")
}

func (c *StreamingClient) listing(ctx context.Context, route string, page int) (json.RawMessage, error) {
	q := map[string]string{}
	if page > 0 {
		q["page"] = strconv.Itoa(page)
	}
	return get(ctx, c.path(route), q)
}

func (c *StreamingClient) Search(ctx context.Context, query string, page int) (json.RawMessage, error) {
	return c.listing(ctx, url.PathEscape(query), page)
}

func (c *StreamingClient) RecentEpisodes(ctx context.Context, page int) (json.RawMessage, error) {
	return c.listing(ctx, "recent-episodes", page)
}

func (c *StreamingClient) TopAiring(ctx context.Context, page int) (json.RawMessage, error) {
	return c.listing(ctx, "top-airing", page)
}

func (c *StreamingClient) MostPopular(ctx context.Context, page int) (json.RawMessage, error) {
	return c.listing(ctx, "most-popular", page)
}

func (c *StreamingClient) MostFavorite(ctx context.Context, page int) (json.RawMessage, error) {
	return c.listing(ctx, "most-favorite", page)
}

func (c *StreamingClient) LatestCompleted(ctx context.Context, page int) (json.RawMessage, error) {
	return c.listing(ctx, "latest-completed", page)
}

func (c *StreamingClient) RecentAdded(ctx context.Context, page int) (json.RawMessage, error) {
	return c.listing(ctx, "recent-added", page)
}

func (c *StreamingClient) TopUpcoming(ctx context.Context, page int) (json.RawMessage, error) {
	return c.listing(ctx, "top-upcoming", page)
}

func (c *StreamingClient) Schedule(ctx context.Context, date string) (json.RawMessage, error) {
	return get(ctx, c.path("schedule", url.PathEscape(date)), nil)
}

func (c *StreamingClient) Info(ctx context.Context, id string) (json.RawMessage, error) {
	return get(ctx, c.path("info"), map[string]string{"id": id})
}

func (c *StreamingClient) Watch(ctx context.Context, episodeID, server, category string) (json.RawMessage, error) {
	return get(ctx, c.path("watch", url.PathEscape(episodeID)), map[string]string{
		"server":   server,
		"category": category,
	})
}

func (c *StreamingClient) GenreList(ctx context.Context) (json.RawMessage, error) {
	return get(ctx, c.path("genre", "list"), nil)
}

func (c *StreamingClient) Genre(ctx context.Context, genre string, page int) (json.RawMessage, error) {
	return c.listing(ctx, "genre/"+url.PathEscape(genre), page)
}

func (c *StreamingClient) Category(ctx context.Context, category string, page int) (json.RawMessage, error) {
	return c.listing(ctx, url.PathEscape(category), page)
}
