package driver

import (
	"fmt"
	"net/http"
	"net/url"
)

type APIDriver struct {
	baseURL string
	client  *http.Client
}

func NewAPIDriver(baseURL string) *APIDriver {
	return &APIDriver{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (d *APIDriver) GetHealthz() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/healthz", d.baseURL))
}

func (d *APIDriver) GetStatus() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/status", d.baseURL))
}

func (d *APIDriver) ListTrials(kind string) (*http.Response, error) {
	query := url.Values{}
	query.Set("limit", "100")
	if kind != "" {
		query.Set("kind", kind)
	}
	return d.client.Get(fmt.Sprintf("%s/v1/trials?%s", d.baseURL, query.Encode()))
}

func (d *APIDriver) GetTrial(id string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/trials/%s", d.baseURL, id))
}

func (d *APIDriver) GetSummary() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/trials/summary", d.baseURL))
}
