// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Opener resolves a locator to its encoded bytes.
type Opener interface {
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
}

type OpenerFunc func(ctx context.Context, locator string) (io.ReadCloser, error)

func (f OpenerFunc) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	return f(ctx, locator)
}

// NewOpener returns the default Opener. It understands plain paths
// (relative ones joined to baseDir), file:// URLs, http:// and https://
// URLs fetched with client, and data: URIs. A nil client means
// http.DefaultClient.
func NewOpener(baseDir string, client *http.Client) Opener {
	if client == nil {
		client = http.DefaultClient
	}
	return &locatorOpener{baseDir: baseDir, client: client}
}

type locatorOpener struct {
	baseDir string
	client  *http.Client
}

func (o *locatorOpener) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scheme, _, found := strings.Cut(locator, ":")
	if !found || len(scheme) < 2 || strings.ContainsAny(scheme, `/\`) {
		// Plain path; a one-letter scheme is a Windows drive.
		return o.openFile(locator)
	}

	switch strings.ToLower(scheme) {
	case "data":
		return openData(locator)
	case "http", "https":
		return o.openHTTP(ctx, locator)
	case "file":
		u, err := url.Parse(locator)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedLocator, err)
		}
		return o.openFile(filepath.FromSlash(u.Path))
	}
	return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedLocator, scheme)
}

func (o *locatorOpener) openFile(path string) (io.ReadCloser, error) {
	if !filepath.IsAbs(path) && o.baseDir != "" {
		path = filepath.Join(o.baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sound file: %w", err)
	}
	return f, nil
}

func (o *locatorOpener) openHTTP(ctx context.Context, locator string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedLocator, err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sound: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}
	return resp.Body, nil
}

// memFile keeps bytes.Reader's Seek visible to decoders.
type memFile struct{ *bytes.Reader }

func (memFile) Close() error { return nil }

func openData(locator string) (io.ReadCloser, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(locator[len("data"):], ":"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URI without payload", ErrUnsupportedLocator)
	}

	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		if unescaped, uerr := url.PathUnescape(payload); uerr == nil {
			payload = unescaped
		}
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var s string
		s, err = url.PathUnescape(payload)
		data = []byte(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decoding data URI: %w", ErrUnsupportedLocator, err)
	}

	return memFile{bytes.NewReader(data)}, nil
}
