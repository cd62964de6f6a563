package httpclients

import (
	"time"

	"animehi.app/anime-api-gateway/config/environment_variables"
	"resty.dev/v3"
)

const userAgentHeader = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// NewClient builds a resty client with the shared timeout policy. A provider
// call that never resolves would otherwise hang its request forever.
func NewClient(name string) *resty.Client {
	timeout := environment_variables.EnvironmentVariables.PROVIDER_TIMEOUT_SECONDS
	if timeout <= 0 {
		timeout = 15
	}
	client := resty.New()
	client.SetHeader("User-Agent", userAgentHeader)
	client.SetHeader("Accept", "application/json")
	client.SetTimeout(time.Duration(timeout) * time.Second)
	return client
}
