package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
)

const (
	clientAgent = "linkscore"
	tempPattern = "linkscore-*"
)

var ErrorURLNotFound = errors.New("URL not found")

// IsRemote reports whether the input path is an http(s) URL.
func IsRemote(p string) bool {
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Download writes the content at url into filepath using client.
func Download(ctx context.Context, client *http.Client, url string, filepath string) (retErr error) {
	if client == nil {
		client = GetHTTPClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating HTTP Get request: %w", err)
	}
	req.Header.Set("User-Agent", clientAgent)

	resp, err := client.Do(req) //nolint:gosec // URL is the user's own input flag
	if err != nil {
		return fmt.Errorf("error executing HTTP Get request: %w", err)
	}
	defer resp.Body.Close()
	PrintHTTPResponse(resp)

	if resp.StatusCode == http.StatusNotFound {
		return ErrorURLNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error downloading file (status: %d - %s): %s", resp.StatusCode, resp.Status, url)
	}

	out, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && retErr == nil {
			retErr = fmt.Errorf("closing file: %w", cerr)
		}
	}()

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("error saving downloaded content to file: %w", err)
	}

	slog.Debug("downloaded", "url", url, "path", filepath, "bytes", n)
	return nil
}

// DownloadTemp downloads url into a new temp file. The returned cleanup
// removes the file and is safe to call when err is not nil.
func DownloadTemp(ctx context.Context, client *http.Client, rawURL string) (string, func(), error) {
	noop := func() {}

	suffix := ""
	if u, err := url.Parse(rawURL); err == nil {
		suffix = path.Ext(u.Path)
	}

	f, err := os.CreateTemp("", tempPattern+suffix)
	if err != nil {
		return "", noop, fmt.Errorf("error creating temp file: %w", err)
	}
	name := f.Name()
	f.Close()

	cleanup := func() {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			slog.Debug("error removing temp file", "path", name, "error", err)
		}
	}

	if err := Download(ctx, client, rawURL, name); err != nil {
		cleanup()
		return "", noop, err
	}

	return name, cleanup, nil
}
