package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
)

type EnvironmentVariable struct {
	PORT     int    `default:"4000"`
	HOSTNAME string `default:""`

	// Optional; absence disables response caching and falls the rate-limit
	// counters back to the in-process store.
	REDIS_CONN_URL string `default:""`

	WINDOW_MS int `default:"1800000"`
	MAX_REQS  int `default:"100"`

	CORS_ALLOWED_ORIGINS string `default:""`

	S_MAXAGE               int `default:"60"`
	STALE_WHILE_REVALIDATE int `default:"30"`

	JWT_SECRET string `default:"your_jwt_secret"`

	DB_POSTGRESQL_DSN      string `default:""`
	DB_POSTGRESQL_READ_DSN string `default:""`

	ANILIST_CLIENT_ID     string `default:""`
	ANILIST_CLIENT_SECRET string `default:""`
	ANILIST_REDIRECT_URL  string `default:"http://localhost:4000/api/auth/anilist/callback"`
	FRONTEND_URL          string `default:"http://localhost:3000"`

	PROVIDER_API_URL         string `default:"https://api.consumet.org"`
	ZORO_URL                 string `default:"https://hianimez.to"`
	ANIMEKAI_URL             string `default:"https://animekai.to"`
	PROVIDER_TIMEOUT_SECONDS int    `default:"15"`

	ENVIRONMENT string `default:"development"`
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			envValue = field.Tag.Get("default")
		}
		if envValue == "" {
			continue
		}
		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(envValue)
		case reflect.Int:
			n, err := strconv.Atoi(envValue)
			if err != nil {
				fmt.Printf("Invalid SYSENV: %s=%q\n", envKey, envValue)
				continue
			}
			v.Field(i).SetInt(int64(n))
		case reflect.Bool:
			b, err := strconv.ParseBool(envValue)
			if err != nil {
				fmt.Printf("Invalid SYSENV: %s=%q\n", envKey, envValue)
				continue
			}
			v.Field(i).SetBool(b)
		}
	}
}

func (ev *EnvironmentVariable) IsProduction() bool {
	return ev.ENVIRONMENT == "production"
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
