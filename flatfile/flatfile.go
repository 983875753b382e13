// Package flatfile reads and writes collections as delimited text, one
// series per line:
//
//	key,v0,v1,...,vN
//
// Values are formatted with the shortest round-trippable representation, so
// NaN, +Inf and -Inf survive a round trip. The time index travels in a
// sidecar artifact next to the data file, named after it with the ".index"
// suffix, holding the index in its compact text encoding.
//
// Bodies can optionally be compressed as a whole with any codec of the
// compress package; the sidecar always stays plain text so it can be
// inspected without tooling.
package flatfile

import (
	"fmt"
	"strings"

	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/format"
	"github.com/arloliu/tsframe/internal/options"
)

// IndexSuffix is appended to a data file path to name its index sidecar.
const IndexSuffix = ".index"

type fileConfig struct {
	compression format.CompressionType
}

// Option configures reading and writing of flat files.
type Option = options.Option[*fileConfig]

// WithCompression sets the codec applied to the whole file body. Reading a
// file requires the same setting it was written with. The default is
// format.CompressionNone.
func WithCompression(compression format.CompressionType) Option {
	return options.NoError(func(cfg *fileConfig) {
		cfg.compression = compression
	})
}

func defaultFileConfig() fileConfig {
	return fileConfig{compression: format.CompressionNone}
}

// validKey rejects keys that would break the line format.
func validKey(key string) error {
	if strings.ContainsAny(key, ",\n\r") {
		return fmt.Errorf("%w: %q contains a delimiter", errs.ErrInvalidKey, key)
	}

	return nil
}
