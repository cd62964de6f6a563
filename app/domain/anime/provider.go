package anime

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider payloads are passed through untouched; the extraction layer is an
// external collaborator and the gateway does not reinterpret its shapes.

var (
	// ErrNotFound maps to a 404 on routes that document one.
	ErrNotFound = errors.New("anime not found")
)

// AdvancedSearchParams mirrors the anilist advanced-search query surface.
type AdvancedSearchParams struct {
	Query   string
	Type    string
	Page    int
	PerPage int
	Format  string
	Sort    []string
	Genres  []string
	ID      string
	Year    int
	Status  string
	Season  string
}

// MetaProvider is the anilist metadata port.
type MetaProvider interface {
	Search(ctx context.Context, query string, page, perPage int) (json.RawMessage, error)
	AdvancedSearch(ctx context.Context, params AdvancedSearchParams) (json.RawMessage, error)
	Trending(ctx context.Context, page, perPage int) (json.RawMessage, error)
	Popular(ctx context.Context, page, perPage int) (json.RawMessage, error)
	Info(ctx context.Context, id string, provider string, dub, fetchFiller bool) (json.RawMessage, error)
	Data(ctx context.Context, id string) (json.RawMessage, error)
	Episodes(ctx context.Context, id string, provider string, dub, fetchFiller bool) (json.RawMessage, error)
	Watch(ctx context.Context, episodeID, provider, server string, dub bool) (json.RawMessage, error)
	Character(ctx context.Context, id string) (json.RawMessage, error)
	Staff(ctx context.Context, id string) (json.RawMessage, error)
	AiringSchedule(ctx context.Context, page, perPage, weekStart, weekEnd int, notYetAired bool) (json.RawMessage, error)
	Genres(ctx context.Context, genres []string, page, perPage int) (json.RawMessage, error)
	RecentEpisodes(ctx context.Context, provider string, page, perPage int) (json.RawMessage, error)
	Random(ctx context.Context) (json.RawMessage, error)
	Servers(ctx context.Context, id, provider string) (json.RawMessage, error)
}

// StreamingProvider is the port shared by the zoro and animekai upstreams.
type StreamingProvider interface {
	Search(ctx context.Context, query string, page int) (json.RawMessage, error)
	RecentEpisodes(ctx context.Context, page int) (json.RawMessage, error)
	TopAiring(ctx context.Context, page int) (json.RawMessage, error)
	MostPopular(ctx context.Context, page int) (json.RawMessage, error)
	MostFavorite(ctx context.Context, page int) (json.RawMessage, error)
	LatestCompleted(ctx context.Context, page int) (json.RawMessage, error)
	RecentAdded(ctx context.Context, page int) (json.RawMessage, error)
	TopUpcoming(ctx context.Context, page int) (json.RawMessage, error)
	Schedule(ctx context.Context, date string) (json.RawMessage, error)
	Info(ctx context.Context, id string) (json.RawMessage, error)
	Watch(ctx context.Context, episodeID, server, category string) (json.RawMessage, error)
	GenreList(ctx context.Context) (json.RawMessage, error)
	Genre(ctx context.Context, genre string, page int) (json.RawMessage, error)
	Category(ctx context.Context, category string, page int) (json.RawMessage, error)
}

// ValidGenres is the anilist genre whitelist enforced by advanced-search.
var ValidGenres = []string{
	"Action", "Adventure", "Cars", "Comedy", "Drama", "Fantasy", "Horror",
	"Mahou Shoujo", "Mecha", "Music", "Mystery", "Psychological", "Romance",
	"Sci-Fi", "Slice of Life", "Sports", "Supernatural", "Thriller",
}

// ValidSeasons is the anilist season whitelist enforced by advanced-search.
var ValidSeasons = []string{"WINTER", "SPRING", "SUMMER", "FALL"}

func IsValidGenre(genre string) bool {
	for _, g := range ValidGenres {
		if g == genre {
			return true
		}
	}
	return false
}

func IsValidSeason(season string) bool {
	for _, s := range ValidSeasons {
		if s == season {
			return true
		}
	}
	return false
}
