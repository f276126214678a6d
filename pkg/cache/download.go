package cache

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/util"
)

// NoCache can be set by a CLI flag to signal that fresh copies should be downloaded
// for every request.
var NoCache bool

// DefaultCache is the default http cache configured at init. It should be used for most
// operations.
var DefaultCache HTTPCache

func init() {
	cache := &httpCache{get: http.Get}
	defer func() { DefaultCache = cache }()
	home, err := os.UserHomeDir()
	if err != nil {
		log.Debug("Could not determine home directory, downloads will not be cached:", err)
		return
	}
	cache.cacheDir = filepath.Join(home, ".usersu", "cache")
}

// HTTPCache retrieves archives from the internet while keeping a local copy
// of each URL for use across CLI invocations.
type HTTPCache interface {
	// CacheDir returns the current cache directory.
	CacheDir() string
	// Get retrieves the given URL from the cache, or the remote server if it
	// isn't already present locally.
	Get(url string) (io.ReadCloser, error)
	// Clean will wipe the contents of the cache.
	Clean() error
}

// New creates a new HTTPCache using the given directory
func New(dir string) HTTPCache {
	return &httpCache{
		cacheDir: dir,
		get:      http.Get,
	}
}

type httpCache struct {
	cacheDir string
	get      func(url string) (*http.Response, error)
}

func (h *httpCache) CacheDir() string { return h.cacheDir }

func (h *httpCache) Clean() error {
	if h.cacheDir == "" {
		return errors.New("No cache directory detected")
	}
	log.Info("Wiping cache directory:", h.cacheDir)
	return os.RemoveAll(h.cacheDir)
}

func (h *httpCache) cachePathForURL(url string) (string, error) {
	cacheName, err := util.CalculateSHA256Sum(strings.NewReader(url))
	if err != nil {
		return "", err
	}
	return filepath.Join(h.cacheDir, cacheName), nil
}

func (h *httpCache) enabled() bool { return !NoCache && h.cacheDir != "" }

func (h *httpCache) Get(url string) (io.ReadCloser, error) {
	var cachePath string
	if h.enabled() {
		var err error
		if cachePath, err = h.cachePathForURL(url); err != nil {
			return nil, err
		}
		if fileExists(cachePath) {
			log.Debugf("Serving %q from local cached item %q\n", url, cachePath)
			return os.Open(cachePath)
		}
	}

	log.Debug("Performing HTTP GET to", url)
	resp, err := h.get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, err := ioutil.ReadAll(io.LimitReader(resp.Body, 4096))
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("error retrieving %q: %s: %s", url, resp.Status, strings.TrimSpace(string(body)))
	}

	// Without a cache the caller streams and closes the response itself
	if !h.enabled() {
		log.Debug("Caching is not enabled, returning raw response object")
		return resp.Body, nil
	}

	defer resp.Body.Close()
	if err := os.MkdirAll(h.cacheDir, 0755); err != nil {
		return nil, err
	}
	// Download beside the final name so an interrupted transfer is never
	// served from the cache later.
	tmp, err := ioutil.TempFile(h.cacheDir, ".download-*")
	if err != nil {
		return nil, err
	}
	log.Debugf("Writing %q to %q\n", url, cachePath)
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, errors.Wrapf(err, "downloading %s", url)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}
	if err := os.Rename(tmp.Name(), cachePath); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}
	return os.Open(cachePath)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		log.Error("Unexpected error from os.Stat:", err)
		return false
	}
	return !info.IsDir()
}
