package pkg

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"golang.org/x/net/context"
)

type GistClient struct {
	baseURL string
	http    *resty.Client
}

func NewGistClient(baseURL string, timeout time.Duration) *GistClient {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetHeader("Accept", "application/vnd.github+json")
	return &GistClient{baseURL: strings.TrimRight(baseURL, "/"), http: client}
}

// Publish overwrites the gist files named in payload. It returns the response status on success.
func (g *GistClient) Publish(
	ctx context.Context,
	logger *zerolog.Logger,
	gistID string,
	creds Credentials,
	payload PublishPayload,
) (int, error) {
	var missing []string
	if creds.Username == "" {
		missing = append(missing, "GH_USERNAME")
	}
	if creds.Token == "" {
		missing = append(missing, "GH_TOKEN")
	}
	if gistID == "" {
		missing = append(missing, "GIST_ID")
	}
	if len(missing) > 0 {
		return 0, &ConfigurationError{Missing: missing}
	}

	endpoint := fmt.Sprintf("%s/gists/%s", g.baseURL, url.PathEscape(gistID))
	res, err := g.http.R().
		SetContext(ctx).
		SetBasicAuth(creds.Username, creds.Token).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Patch(endpoint)
	if err != nil {
		logger.Err(err).Str("gist", gistID).Msg("An error occurred while trying to update gist")
		return 0, &PublishError{Err: errors.Wrap(err, "patch gist")}
	}

	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		logger.Error().Str("gist", gistID).Int("status", res.StatusCode()).
			Msg("Gist update was rejected")
		return res.StatusCode(), &PublishError{StatusCode: res.StatusCode()}
	}

	files := make([]string, 0, len(payload.Files))
	for name := range payload.Files {
		files = append(files, name)
	}
	logger.Debug().Str("gist", gistID).Strs("files", files).Int("status", res.StatusCode()).
		Msg("Gist updated")
	return res.StatusCode(), nil
}
