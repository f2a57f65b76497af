package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tripflow/internal/config"
)

const unsplashSearchURL = "https://api.unsplash.com/search/photos"

type MediaServiceInterface interface {
	// FetchImages resolves up to max local image paths for the given search
	// queries. Best effort: failures are logged and skipped, never returned.
	FetchImages(ctx context.Context, queries []string, max int) []string
}

type MediaService struct {
	accessKey string
	cacheDir  string
	searchURL string
	client    *http.Client
	memo      *cache.Cache
	logger    *zap.Logger
	mkdirOnce sync.Once
}

func NewMediaService(cfg config.Config, creds config.CredentialSource, logger *zap.Logger) MediaServiceInterface {
	return &MediaService{
		accessKey: creds.Get("unsplash"),
		cacheDir:  cfg.Media.CacheDir,
		searchURL: unsplashSearchURL,
		client:    &http.Client{Timeout: 15 * time.Second},
		memo:      cache.New(30*time.Minute, 10*time.Minute),
		logger:    logger,
	}
}

func (m *MediaService) FetchImages(ctx context.Context, queries []string, max int) []string {
	if m.accessKey == "" || max <= 0 {
		return nil
	}
	if len(queries) > max {
		queries = queries[:max]
	}

	paths := make([]string, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, q := range queries {
		g.Go(func() error {
			path, err := m.fetchOne(gctx, q)
			if err != nil {
				m.logger.Warn("image fetch failed", zap.String("query", q), zap.Error(err))
				return nil
			}
			paths[i] = path
			return nil
		})
	}
	g.Wait()

	var out []string
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (m *MediaService) fetchOne(ctx context.Context, query string) (string, error) {
	cached := m.cachePath(query)
	if _, err := os.Stat(cached); err == nil {
		return cached, nil
	}

	imageURL, err := m.searchImageURL(ctx, query)
	if err != nil {
		return "", err
	}
	if err := m.download(ctx, imageURL, cached); err != nil {
		return "", err
	}
	return cached, nil
}

func (m *MediaService) searchImageURL(ctx context.Context, query string) (string, error) {
	if v, ok := m.memo.Get(query); ok {
		return v.(string), nil
	}

	u := fmt.Sprintf("%s?query=%s&per_page=1&orientation=landscape", m.searchURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+m.accessKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash search returned %d", resp.StatusCode)
	}

	var payload struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Results) == 0 {
		return "", fmt.Errorf("no results for %q", query)
	}

	imageURL := payload.Results[0].URLs.Regular
	m.memo.Set(query, imageURL, cache.DefaultExpiration)
	return imageURL, nil
}

func (m *MediaService) download(ctx context.Context, imageURL, dest string) error {
	m.mkdirOnce.Do(func() {
		if err := os.MkdirAll(m.cacheDir, 0o755); err != nil {
			m.logger.Warn("create image cache dir failed", zap.String("dir", m.cacheDir), zap.Error(err))
		}
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image download returned %d", resp.StatusCode)
	}

	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

func (m *MediaService) cachePath(query string) string {
	sum := sha1.Sum([]byte(query))
	return filepath.Join(m.cacheDir, hex.EncodeToString(sum[:])+".jpg")
}
