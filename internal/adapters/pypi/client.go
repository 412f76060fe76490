// Package pypi resolves project versions against the PyPI JSON API.
package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.trai.ch/zerr"

	"github.com/pinfile/pinfile/internal/core/domain"
	"github.com/pinfile/pinfile/internal/core/ports"
)

const DefaultBaseURL = "https://pypi.org"

// Client queries the index for the latest published version of a
// project. Results are cached on disk so repeated pin runs do not
// hammer the index.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *versionCache
	log     ports.Logger
}

var _ ports.PackageIndex = (*Client)(nil)

func NewClient(baseURL, cacheDir string, log ports.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   newVersionCache(cacheDir),
		log:     log,
	}
}

type projectInfo struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// LatestVersion returns the current release of the named project.
// The name is normalized before lookup, matching the index's own
// redirect behavior for non-canonical spellings.
func (c *Client) LatestVersion(ctx context.Context, name string) (domain.Version, error) {
	normalized := domain.NormalizeName(name)

	if cached, ok := c.cache.get(normalized); ok {
		return cached, nil
	}

	version, err := c.fetch(ctx, normalized)
	if err != nil {
		return domain.Version{}, err
	}

	if err := c.cache.put(normalized, version); err != nil {
		c.log.Warn(fmt.Sprintf("failed to cache version for %s: %v", normalized, err))
	}
	return version, nil
}

func (c *Client) fetch(ctx context.Context, name string) (domain.Version, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Version{}, zerr.Wrap(err, "failed to build index request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Version{}, zerr.With(zerr.Wrap(err, "index request failed"), "project", name)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return domain.Version{}, zerr.With(domain.ErrUnknownProject, "project", name)
	default:
		err := zerr.With(zerr.New("unexpected index response"), "project", name)
		return domain.Version{}, zerr.With(err, "status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.Version{}, zerr.Wrap(err, "failed to read index response")
	}

	var info projectInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return domain.Version{}, zerr.With(zerr.Wrap(err, "malformed index response"), "project", name)
	}

	version, err := domain.ParseVersion(info.Info.Version)
	if err != nil {
		return domain.Version{}, zerr.With(err, "project", name)
	}
	return version, nil
}
