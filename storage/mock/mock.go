package mock

import (
	"context"
	"io"

	"github.com/davbox/davboxd/storage"
	"github.com/stretchr/testify/mock"
)

// Driver mocks a storage.Driver.
type Driver struct {
	mock.Mock
}

// Head mocks the Head call.
func (d *Driver) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	args := d.Called()
	return args.Get(0).(*storage.ObjectInfo), args.Error(1)
}

// Get mocks the Get call.
func (d *Driver) Get(ctx context.Context, key string) (io.ReadCloser, *storage.ObjectInfo, error) {
	args := d.Called()
	return args.Get(0).(io.ReadCloser), args.Get(1).(*storage.ObjectInfo), args.Error(2)
}

// Put mocks the Put call.
func (d *Driver) Put(ctx context.Context, key string, r io.Reader, size int64, opts storage.PutOptions) error {
	args := d.Called()
	return args.Error(0)
}

// Copy mocks the Copy call.
func (d *Driver) Copy(ctx context.Context, sourceKey, targetKey string) error {
	args := d.Called()
	return args.Error(0)
}

// Delete mocks the Delete call.
func (d *Driver) Delete(ctx context.Context, key string) error {
	args := d.Called()
	return args.Error(0)
}

// List mocks the List call.
func (d *Driver) List(ctx context.Context, opts storage.ListOptions) (*storage.ListResult, error) {
	args := d.Called()
	return args.Get(0).(*storage.ListResult), args.Error(1)
}
