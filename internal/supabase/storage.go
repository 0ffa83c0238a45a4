package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// StorageClient handles storage bucket operations. Only the seed tool uses
// it; the server itself never writes assets.
type StorageClient struct {
	client *Client
}

// Upload uploads an object to a bucket. With upsert set, an existing object
// at the same path is replaced.
func (s *StorageClient) Upload(ctx context.Context, bucket, objectPath string, data []byte, contentType string, upsert bool) error {
	uploadURL := fmt.Sprintf("%s/object/%s/%s", s.client.storageURL, url.PathEscape(bucket), escapeObjectPath(objectPath))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("apikey", s.client.config.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+s.client.config.ServiceKey)
	if upsert {
		req.Header.Set("x-upsert", "true")
	}

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return parseError(body, resp.StatusCode)
	}

	return nil
}

// PublicURL returns the public URL for an object in a public bucket.
func (s *StorageClient) PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", s.client.storageURL, url.PathEscape(bucket), escapeObjectPath(objectPath))
}

// escapeObjectPath escapes each segment while keeping the slashes.
func escapeObjectPath(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}
