package memory

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"io/ioutil"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/storage"
)

type object struct {
	data []byte
	info storage.ObjectInfo
}

type driver struct {
	mux     sync.RWMutex
	objects map[string]*object
}

// New returns an in-memory storage.Driver. It backs the test suites and
// the out-of-the-box configuration; contents are lost on restart.
func New() storage.Driver {
	return &driver{objects: map[string]*object{}}
}

func (d *driver) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	d.mux.RLock()
	defer d.mux.RUnlock()

	o, ok := d.objects[key]
	if !ok {
		return nil, codes.NewErr(codes.NotFound, "object does not exist")
	}
	info := o.info
	return &info, nil
}

func (d *driver) Get(ctx context.Context, key string) (io.ReadCloser, *storage.ObjectInfo, error) {
	d.mux.RLock()
	defer d.mux.RUnlock()

	o, ok := d.objects[key]
	if !ok {
		return nil, nil, codes.NewErr(codes.NotFound, "object does not exist")
	}
	info := o.info
	return ioutil.NopCloser(bytes.NewReader(o.data)), &info, nil
}

func (d *driver) Put(ctx context.Context, key string, r io.Reader, size int64, opts storage.PutOptions) error {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}

	sum := md5.Sum(data)
	info := storage.ObjectInfo{
		Key:      key,
		Size:     int64(len(data)),
		ModTime:  time.Now(),
		MimeType: opts.ContentType,
		ETag:     hex.EncodeToString(sum[:]),
		Metadata: copyMetadata(opts.Metadata),
	}

	d.mux.Lock()
	defer d.mux.Unlock()
	d.objects[key] = &object{data: data, info: info}
	return nil
}

func (d *driver) Copy(ctx context.Context, sourceKey, targetKey string) error {
	d.mux.Lock()
	defer d.mux.Unlock()

	src, ok := d.objects[sourceKey]
	if !ok {
		return codes.NewErr(codes.NotFound, "object does not exist")
	}

	info := src.info
	info.Key = targetKey
	info.ModTime = time.Now()
	info.Metadata = copyMetadata(src.info.Metadata)
	d.objects[targetKey] = &object{data: append([]byte(nil), src.data...), info: info}
	return nil
}

// Delete is idempotent: removing an absent key is not an error, matching
// object-store semantics.
func (d *driver) Delete(ctx context.Context, key string) error {
	d.mux.Lock()
	defer d.mux.Unlock()
	delete(d.objects, key)
	return nil
}

func (d *driver) List(ctx context.Context, opts storage.ListOptions) (*storage.ListResult, error) {
	d.mux.RLock()
	keys := make([]string, 0, len(d.objects))
	for key := range d.objects {
		if strings.HasPrefix(key, opts.Prefix) && key > opts.Cursor {
			keys = append(keys, key)
		}
	}
	d.mux.RUnlock()
	sort.Strings(keys)

	result := &storage.ListResult{}
	seenPrefixes := map[string]bool{}
	count := 0
	for _, key := range keys {
		if opts.Limit > 0 && count >= opts.Limit {
			result.IsTruncated = true
			break
		}

		if opts.Delimiter != "" {
			// a key whose remainder contains the delimiter is rolled up
			// into a common prefix; the key equal to the prefix itself
			// (a directory placeholder) has an empty remainder and is
			// returned as an object.
			rest := strings.TrimPrefix(key, opts.Prefix)
			if i := strings.Index(rest, opts.Delimiter); i != -1 {
				commonPrefix := opts.Prefix + rest[:i+1]
				if !seenPrefixes[commonPrefix] {
					seenPrefixes[commonPrefix] = true
					result.Prefixes = append(result.Prefixes, commonPrefix)
					// the cursor must clear the whole rolled-up group or
					// the next page would emit the same prefix again
					result.NextCursor = nextAfterPrefix(commonPrefix)
					count++
				}
				continue
			}
		}

		d.mux.RLock()
		o, ok := d.objects[key]
		var info storage.ObjectInfo
		if ok {
			info = o.info
		}
		d.mux.RUnlock()
		if !ok {
			continue
		}
		result.Objects = append(result.Objects, &info)
		result.NextCursor = key
		count++
	}
	return result, nil
}

// nextAfterPrefix returns the smallest key that sorts after every key
// sharing the given prefix.
func nextAfterPrefix(prefix string) string {
	return prefix[:len(prefix)-1] + string(rune(prefix[len(prefix)-1])+1)
}

func copyMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}
	copied := make(map[string]string, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}
	return copied
}
