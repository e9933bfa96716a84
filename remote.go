package plink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

type ReaderAtCloser interface {
	io.ReaderAt
	io.Closer
}

// GSReaderAtCloser decorates a Google Storage object handle with ReadAt.
type GSReaderAtCloser struct {
	*storage.ObjectHandle
	Context context.Context
}

// ReadAt satisfies io.ReaderAt with one ranged request per call.
func (o GSReaderAtCloser) ReadAt(p []byte, offset int64) (int, error) {
	rdr, err := o.NewRangeReader(o.Context, offset, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer rdr.Close()

	return io.ReadFull(rdr, p)
}

// Close is a nop; each ReadAt closes its own range reader.
func (o GSReaderAtCloser) Close() error {
	return nil
}

func isGoogleStorage(path string, client *storage.Client) bool {
	return client != nil && strings.HasPrefix(path, "gs://")
}

func objectHandle(path string, client *storage.Client) (*storage.ObjectHandle, error) {
	// Detect the bucket and the path to the actual file
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 {
		return nil, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return client.Bucket(pathParts[0]).Object(pathParts[1]), nil
}

// exists reports whether path names an object that can be opened. Lookup
// failures other than absence are reported as existing so that opening the
// path surfaces the real error.
func exists(path string, client *storage.Client) bool {
	if isGoogleStorage(path, client) {
		handle, err := objectHandle(path, client)
		if err != nil {
			return false
		}
		_, err = handle.Attrs(context.Background())
		return !errors.Is(err, storage.ErrObjectNotExist)
	}

	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// openText opens a text member of a fileset, transparently decompressing it.
// gs:// paths are read from Google Storage if client is non-nil.
func openText(path string, client *storage.Client) (io.ReadCloser, error) {
	var rc io.ReadCloser

	if isGoogleStorage(path, client) {
		handle, err := objectHandle(path, client)
		if err != nil {
			return nil, err
		}
		r, err := handle.NewReader(context.Background())
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}
		rc = r
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rc = f
	}

	return MaybeDecompressReadCloser(rc)
}

// openRandomAccess returns a ReaderAtCloser and the size of the object at
// path. Local files are returned as *os.File so they can be mapped.
func openRandomAccess(path string, client *storage.Client) (ReaderAtCloser, int64, error) {
	if isGoogleStorage(path, client) {
		handle, err := objectHandle(path, client)
		if err != nil {
			return nil, 0, err
		}

		wrapped := GSReaderAtCloser{
			ObjectHandle: handle,
			Context:      context.Background(),
		}

		// Make a hard call to get the filesize
		attrs, err := handle.Attrs(wrapped.Context)
		if err != nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return wrapped, attrs.Size, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, pfx.Err(err)
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, pfx.Err(err)
	}

	return f, fstat.Size(), nil
}
