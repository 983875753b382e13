package flatfile

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/arloliu/tsframe/compress"
	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/internal/options"
	"github.com/arloliu/tsframe/internal/pool"
	"github.com/arloliu/tsframe/timeindex"
)

// Write writes the series to w in line format, compressed per the options.
//
// Parameters:
//   - w: destination
//   - series: series to write, one line each
//   - opts: optional settings, e.g. WithCompression
//
// Returns:
//   - error: errs.ErrInvalidKey on a key holding a delimiter,
//     errs.ErrInvalidCompressionType, or a write error
func Write(w io.Writer, series []frame.Series, opts ...Option) error {
	cfg := defaultFileConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return err
	}
	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return err
	}

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	for _, s := range series {
		if err := validKey(s.Key); err != nil {
			return err
		}

		buf.WriteString(s.Key)
		for _, v := range s.Data {
			_ = buf.WriteByte(',')
			buf.B = strconv.AppendFloat(buf.B, v, 'g', -1, 64)
		}
		_ = buf.WriteByte('\n')
	}

	body, err := codec.Compress(buf.Bytes())
	if err != nil {
		return err
	}
	_, err = w.Write(body)

	return err
}

// WriteIndex writes the text encoding of idx, newline terminated.
func WriteIndex(w io.Writer, idx timeindex.Index) error {
	if idx == nil {
		return errs.ErrNilIndex
	}

	_, err := io.WriteString(w, idx.Encode()+"\n")

	return err
}

// WriteFile writes the series to the file at path and the index to the
// sidecar at path+IndexSuffix. Existing files are truncated.
//
// Returns:
//   - error: errs.ErrNilIndex, any Write error, or a file system error
func WriteFile(path string, idx timeindex.Index, series []frame.Series, opts ...Option) error {
	if idx == nil {
		return errs.ErrNilIndex
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, series, opts...); err != nil {
		_ = f.Close()

		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	sidecar, err := os.Create(path + IndexSuffix)
	if err != nil {
		return err
	}
	if err := WriteIndex(sidecar, idx); err != nil {
		_ = sidecar.Close()

		return err
	}

	return sidecar.Close()
}

// Save evaluates the collection and writes it with WriteFile.
func Save(ctx context.Context, path string, c *frame.Collection, opts ...Option) error {
	series, err := c.Collect(ctx)
	if err != nil {
		return err
	}

	return WriteFile(path, c.Index(), series, opts...)
}
