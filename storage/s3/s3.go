package s3

import (
	"context"
	"io"
	"strings"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/storage"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type driver struct {
	client *minio.Client
	bucket string
	prefix string
}

// Options holds the configuration parameters used by the driver.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool

	// Bucket is the backing bucket and Prefix an optional key prefix the
	// binding is jailed to.
	Bucket string
	Prefix string
}

// New returns a storage.Driver over an S3-compatible bucket.
func New(opts *Options) (storage.Driver, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}

	prefix := strings.TrimPrefix(opts.Prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &driver{client: client, bucket: opts.Bucket, prefix: prefix}, nil
}

func (d *driver) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	info, err := d.client.StatObject(ctx, d.bucket, d.prefix+key, minio.StatObjectOptions{})
	if err != nil {
		return nil, convertError(err)
	}
	return d.objectInfo(info), nil
}

func (d *driver) Get(ctx context.Context, key string) (io.ReadCloser, *storage.ObjectInfo, error) {
	obj, err := d.client.GetObject(ctx, d.bucket, d.prefix+key, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, convertError(err)
	}
	// GetObject is lazy; Stat forces the request so missing keys surface
	// here instead of on the first read.
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, nil, convertError(err)
	}
	return obj, d.objectInfo(info), nil
}

func (d *driver) Put(ctx context.Context, key string, r io.Reader, size int64, opts storage.PutOptions) error {
	_, err := d.client.PutObject(ctx, d.bucket, d.prefix+key, r, size, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.Metadata,
	})
	return convertError(err)
}

func (d *driver) Copy(ctx context.Context, sourceKey, targetKey string) error {
	_, err := d.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: d.bucket, Object: d.prefix + targetKey},
		minio.CopySrcOptions{Bucket: d.bucket, Object: d.prefix + sourceKey})
	return convertError(err)
}

func (d *driver) Delete(ctx context.Context, key string) error {
	return convertError(d.client.RemoveObject(ctx, d.bucket, d.prefix+key, minio.RemoveObjectOptions{}))
}

func (d *driver) List(ctx context.Context, opts storage.ListOptions) (*storage.ListResult, error) {
	listOpts := minio.ListObjectsOptions{
		Prefix:     d.prefix + opts.Prefix,
		Recursive:  opts.Delimiter == "",
		StartAfter: d.prefix + opts.Cursor,
	}
	if opts.Cursor == "" {
		listOpts.StartAfter = ""
	}

	// the listing goroutine only stops when its context ends, so a
	// truncated page must cancel it instead of leaving it blocked on the
	// channel until the request context does.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := &storage.ListResult{}
	count := 0
	for entry := range d.client.ListObjects(ctx, d.bucket, listOpts) {
		if entry.Err != nil {
			return nil, convertError(entry.Err)
		}
		if opts.Limit > 0 && count >= opts.Limit {
			result.IsTruncated = true
			break
		}

		key := strings.TrimPrefix(entry.Key, d.prefix)

		// non-recursive listings deliver common prefixes as entries with
		// a trailing delimiter; the key equal to the requested prefix is
		// a real placeholder object.
		if opts.Delimiter != "" && key != opts.Prefix && strings.HasSuffix(key, opts.Delimiter) && entry.ETag == "" {
			result.Prefixes = append(result.Prefixes, key)
			result.NextCursor = key
			count++
			continue
		}

		info := d.objectInfo(entry)
		info.Key = key
		result.Objects = append(result.Objects, info)
		result.NextCursor = key
		count++
	}
	return result, nil
}

func (d *driver) objectInfo(info minio.ObjectInfo) *storage.ObjectInfo {
	return &storage.ObjectInfo{
		Key:      strings.TrimPrefix(info.Key, d.prefix),
		Size:     info.Size,
		ModTime:  info.LastModified,
		MimeType: info.ContentType,
		ETag:     strings.Trim(info.ETag, `"`),
		Metadata: map[string]string(info.UserMetadata),
	}
}

func convertError(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return codes.NewErr(codes.NotFound, err.Error())
	}
	return err
}
