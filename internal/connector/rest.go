package connector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/config"
)

// REST is for REST connection.
// One instance is shared by all the exchange clients of a run.
type REST struct {
	HTTPClient *http.Client
}

var rest REST

// InitREST initializes http client with configured values.
func InitREST(cfg *config.REST) *REST {
	if rest.HTTPClient == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.MaxIdleConns = cfg.MaxIdleConns
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
		rest = REST{
			HTTPClient: &http.Client{
				Timeout:   time.Duration(cfg.ReqTimeoutSec) * time.Second,
				Transport: t,
			},
		}
	}
	return &rest
}

// Request creates a new request object for http operation.
func (r *REST) Request(appCtx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(appCtx, method, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Do makes http call to the exchange API. Any response status other than
// 200 is an error and the body is already closed in that case.
func (r *REST) Do(req *http.Request) (*http.Response, error) {
	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("code : %v, status : %v", resp.StatusCode, resp.Status)
	}
	return resp, nil
}
