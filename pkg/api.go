package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

type ApiMetadata struct {
	URL  string
	http *resty.Client
}

func NewApiMetadata(url string, timeout time.Duration) *ApiMetadata {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetHeader("Accept", "application/json")
	return &ApiMetadata{URL: url, http: client}
}

func (api *ApiMetadata) GetGlobalStats(ctx context.Context) (GlobalStats, error) {
	res, err := api.http.R().
		SetContext(ctx).
		Get(api.URL)
	if err != nil {
		return GlobalStats{}, &FetchError{Err: errors.Wrap(err, "request summary")}
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		return GlobalStats{}, &FetchError{
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", res.Status()),
		}
	}

	var summary SummaryEntity
	err = json.Unmarshal(res.Body(), &summary)
	if err != nil {
		return GlobalStats{}, &FetchError{StatusCode: res.StatusCode(), Err: errors.Wrap(err, "decode summary")}
	}
	stats, err := summary.globalStats()
	if err != nil {
		return GlobalStats{}, &FetchError{StatusCode: res.StatusCode(), Err: err}
	}
	return stats, nil
}

func (s SummaryEntity) globalStats() (GlobalStats, error) {
	if s.Global == nil {
		return GlobalStats{}, errors.New("missing Global object")
	}
	if s.Global.TotalConfirmed == nil || s.Global.TotalRecovered == nil {
		return GlobalStats{}, errors.New("missing TotalConfirmed or TotalRecovered in Global object")
	}
	stats := GlobalStats{
		TotalConfirmed: *s.Global.TotalConfirmed,
		TotalRecovered: *s.Global.TotalRecovered,
	}
	// deaths only feeds the graph style
	if s.Global.TotalDeaths != nil {
		stats.TotalDeaths = *s.Global.TotalDeaths
	}
	if stats.TotalConfirmed < 0 || stats.TotalRecovered < 0 || stats.TotalDeaths < 0 {
		return GlobalStats{}, fmt.Errorf("negative totals in Global object: %+v", stats)
	}
	return stats, nil
}
