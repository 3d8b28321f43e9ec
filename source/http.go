package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	c "github.com/unkn0wn-root/ttlcache/codec"
)

const defaultHTTPTTL = time.Minute

// HTTP produces values by fetching <base>/<key> and decoding the response
// body with a codec. The TTL comes from the response's Cache-Control
// max-age directive; responses without one get DefaultTTL.
type HTTP[V any] struct {
	base   *url.URL
	client *http.Client
	header http.Header
	codec  c.Codec[V]
	ttl    time.Duration
}

type HTTPConfig[V any] struct {
	BaseURL    string
	Codec      c.Codec[V]
	Client     *http.Client  // nil => http.DefaultClient
	Header     http.Header   // extra request headers, e.g. auth
	DefaultTTL time.Duration // TTL when the response carries no max-age; 0 => 1m
}

func NewHTTP[V any](cfg HTTPConfig[V]) (*HTTP[V], error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("source: url must have http or https scheme: %s", cfg.BaseURL)
	}
	if cfg.Codec == nil {
		return nil, errors.New("source: codec is required")
	}

	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = defaultHTTPTTL
	}

	return &HTTP[V]{
		base:   u,
		client: client,
		header: cfg.Header,
		codec:  cfg.Codec,
		ttl:    ttl,
	}, nil
}

// Produce fetches and decodes the value for key. A 404 returns ErrNotFound;
// any other non-200 status is an error.
func (s *HTTP[V]) Produce(ctx context.Context, key string) (V, time.Duration, error) {
	var zero V

	u := s.base.JoinPath(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return zero, 0, err
	}
	for k, vals := range s.header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return zero, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return zero, 0, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return zero, 0, fmt.Errorf("source: fetch %s: status %d", u, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, 0, err
	}
	v, err := s.codec.Decode(body)
	if err != nil {
		return zero, 0, fmt.Errorf("source: decode %s: %w", u, err)
	}

	ttl := s.ttl
	if d, ok := maxAge(resp.Header.Get("Cache-Control")); ok {
		ttl = d
	}
	return v, ttl, nil
}

func (s *HTTP[V]) String() string { return s.base.String() }

// maxAge extracts the max-age directive from a Cache-Control header.
func maxAge(cc string) (time.Duration, bool) {
	for _, dir := range strings.Split(cc, ",") {
		dir = strings.TrimSpace(dir)
		val, ok := strings.CutPrefix(dir, "max-age=")
		if !ok {
			continue
		}
		secs, err := strconv.Atoi(val)
		if err != nil || secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	return 0, false
}
