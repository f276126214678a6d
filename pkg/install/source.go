package install

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/tinyzimmer/usersu/pkg/cache"
	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/util"
)

// OpenSource opens an archive given either as a local path or an http(s) URL.
// URLs are served through the default download cache.
func OpenSource(source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		log.Info("Fetching", source)
		rdr, err := cache.DefaultCache.Get(source)
		if err != nil {
			return nil, errors.Wrapf(err, "fetching %s", source)
		}
		return rdr, nil
	}
	path, err := util.ExpandHome(source)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening archive")
	}
	return f, nil
}
