package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Fetcher downloads drop images.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with the given client. http.DefaultClient is used when client is nil.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client}
}

// Fetch stores the content at url in dst.
// Any failure is returned as *TransferError and no partial file is left behind.
func (f *Fetcher) Fetch(ctx context.Context, url string, dst string) error {
	if err := f.fetch(ctx, url, dst); err != nil {
		_ = os.Remove(dst)
		return &TransferError{URL: url, Err: err}
	}
	return nil
}

func (f *Fetcher) fetch(ctx context.Context, url string, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
