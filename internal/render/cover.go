package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"
	"time"

	_ "golang.org/x/image/webp"
	"resty.dev/v3"
)

// CoverFetcher downloads cover images over HTTP. Images are cached by URL for the
// lifetime of the fetcher.
type CoverFetcher struct {
	httpClient *resty.Client

	mu    sync.Mutex
	cache map[string]image.Image
}

func NewCoverFetcher(timeout time.Duration, retryCount int) *CoverFetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(retryCount)
	client.SetHeader("Accept", "image/*")

	return &CoverFetcher{
		httpClient: client,
		cache:      map[string]image.Image{},
	}
}

func (f *CoverFetcher) Close() error {
	return f.httpClient.Close()
}

func (f *CoverFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	f.mu.Lock()
	cached, ok := f.cache[url]
	f.mu.Unlock()
	if ok {
		return cached, nil
	}

	response, err := f.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get(%s) > %w", url, err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d from %s", response.StatusCode(), url)
	}

	img, _, err := image.Decode(bytes.NewReader(response.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("image.Decode() > %w", err)
	}

	f.mu.Lock()
	f.cache[url] = img
	f.mu.Unlock()
	return img, nil
}
