package storage

import (
	"context"
	"io"
	"time"

	"github.com/davbox/davboxd/codes"
)

// ObjectInfo is the metadata a driver knows about a stored object.
type ObjectInfo struct {
	Key      string
	Size     int64
	ModTime  time.Time
	MimeType string
	ETag     string
	Metadata map[string]string
}

// PutOptions carries the metadata recorded alongside an uploaded object.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// ListOptions selects the portion of the key space to enumerate.
// An empty Delimiter lists every key under Prefix; "/" groups keys into
// common prefixes, simulating a directory listing. Cursor is the key to
// start after; Limit caps the number of returned entries (0 means no cap).
type ListOptions struct {
	Prefix    string
	Delimiter string
	Cursor    string
	Limit     int
}

// ListResult is one page of a listing.
type ListResult struct {
	Objects     []*ObjectInfo
	Prefixes    []string
	NextCursor  string
	IsTruncated bool
}

// Driver is the only dependency the WebDAV core has on the underlying
// object store: a flat key-value namespace with prefix+delimiter listing.
// Keys are slash-delimited with no leading slash; a trailing slash marks
// a directory placeholder. Drivers must return *codes.Err with
// codes.NotFound when a key is absent.
type Driver interface {
	Head(ctx context.Context, key string) (*ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error)
	Put(ctx context.Context, key string, r io.Reader, size int64, opts PutOptions) error
	Copy(ctx context.Context, sourceKey, targetKey string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
}

// Registry holds the statically declared bucket bindings exposed by the
// daemon. Bindings are built once from the directives at startup; there
// is no runtime discovery of buckets.
type Registry struct {
	drivers map[string]Driver
}

// NewRegistry returns a Registry over the given named drivers.
func NewRegistry(drivers map[string]Driver) *Registry {
	if drivers == nil {
		drivers = map[string]Driver{}
	}
	return &Registry{drivers: drivers}
}

// Get returns the driver bound to the given binding name.
func (r *Registry) Get(name string) (Driver, error) {
	driver, ok := r.drivers[name]
	if !ok {
		return nil, codes.NewErr(codes.NotFound, "bucket binding does not exist")
	}
	return driver, nil
}

// Names returns the declared binding names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	return names
}
