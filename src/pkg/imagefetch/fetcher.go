// Package imagefetch downloads proof-of-payment images and normalizes them for embedding.
package imagefetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

// Payload is always a JPEG re-encoded by the fetcher.
type Payload struct {
	Data      []byte
	Width     int
	Height    int
	SourceURL string
}

type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	cfg     Config
}

func NewFetcher(cfg Config) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cfg:     cfg,
	}
}

/*
Fetch downloads url and returns an embeddable JPEG, or nil on any failure.

Failures never propagate: the caller draws a placeholder instead. One attempt, no retries.
*/
func (f *Fetcher) Fetch(ctx context.Context, url string) *Payload {
	payload, e := f.fetch(ctx, url)
	if e != nil {
		tl.Log(tl.Warning, palette.Yellow, "Unable to fetch image '%s', using placeholder: '%s'", url, e)
		return nil
	}

	tl.Log(
		tl.Verbose, palette.GreenDim, "Fetched image '%s' (%vx%v, %v bytes)",
		url, payload.Width, payload.Height, len(payload.Data),
	)
	return payload
}

func (f *Fetcher) fetch(ctx context.Context, url string) (payload *Payload, e *xerr.Error) {
	err := f.limiter.Wait(ctx)
	if err != nil {
		return nil, xerr.NewError(err, "wait for fetch limiter", url)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, xerr.NewError(err, "Failed to create HTTP request", url)
	}
	request.Header.Set("Accept", "image/*")
	request.Header.Set("Accept-Encoding", "gzip, deflate, br")
	request.Header.Set("User-Agent", f.cfg.UserAgent)

	tl.Log(tl.Debug, palette.BlueDim, "Fetching image '%s'", url)
	response, err := f.client.Do(request)
	if err != nil {
		return nil, xerr.NewError(err, "HTTP error during image fetch", url)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, xerr.NewError(fmt.Errorf("status is '%s'", response.Status), "image server refused request", url)
	}

	body, e := readBody(response, url, f.cfg.MaxBytes)
	if e != nil {
		return nil, e
	}

	return normalize(body, f.cfg.MaxDimension, f.cfg.JPEGQuality, url)
}
