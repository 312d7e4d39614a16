package webdav

import (
	"context"
	"strings"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/entities"
	"github.com/davbox/davboxd/storage"
)

// The store has no directories. A key is a tree iff it is the bucket
// root, it is backed by a zero-byte placeholder object whose key ends in
// "/", or at least one object lives under the key treated as a prefix.

// examineObject resolves what a key refers to: a blob (real object), a
// tree (placeholder-backed or synthesized), or nothing. A key with the
// directory marker never resolves to a blob, so a file can not be made
// to masquerade as a collection by appending a slash.
func (s *svc) examineObject(ctx context.Context, driver storage.Driver, key string) (*entities.ObjectInfo, error) {
	if isTreeKey(key) {
		return s.examineTree(ctx, driver, key)
	}

	info, err := driver.Head(ctx, key)
	if err == nil {
		return s.blobInfo(info), nil
	}
	if !codes.IsNotFound(err) {
		return nil, err
	}

	// extension-less keys sent without the directory marker may still
	// name a tree; Windows Explorer issues PROPFIND /dir that way.
	return s.examineTree(ctx, driver, treeKey(key))
}

func (s *svc) examineTree(ctx context.Context, driver storage.Driver, key string) (*entities.ObjectInfo, error) {
	if key == "" {
		return s.treeInfo("", nil), nil
	}

	placeholder, err := driver.Head(ctx, key)
	if err == nil {
		return s.treeInfo(key, placeholder), nil
	}
	if !codes.IsNotFound(err) {
		return nil, err
	}

	result, err := driver.List(ctx, storage.ListOptions{Prefix: key, Delimiter: "/", Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(result.Objects) == 0 && len(result.Prefixes) == 0 {
		return nil, codes.NewErr(codes.NotFound, "object does not exist")
	}
	return s.treeInfo(key, nil), nil
}

// listTree returns the immediate children of a tree key: one entry per
// common prefix (subdirectory) and one per object directly under the
// prefix. The placeholder object backing the tree itself is excluded so
// a directory never lists itself as a file.
func (s *svc) listTree(ctx context.Context, driver storage.Driver, key string) ([]*entities.ObjectInfo, error) {
	prefix := ""
	if key != "" {
		prefix = treeKey(key)
	}

	var children []*entities.ObjectInfo
	cursor := ""
	for {
		result, err := driver.List(ctx, storage.ListOptions{Prefix: prefix, Delimiter: "/", Cursor: cursor})
		if err != nil {
			return nil, err
		}
		for _, subPrefix := range result.Prefixes {
			children = append(children, s.treeInfo(subPrefix, nil))
		}
		for _, obj := range result.Objects {
			if obj.Key == prefix || strings.HasSuffix(obj.Key, "/") {
				continue
			}
			children = append(children, s.blobInfo(obj))
		}
		if !result.IsTruncated {
			return children, nil
		}
		cursor = result.NextCursor
	}
}

// listAllObjects enumerates every object under a prefix, placeholders
// included. Directory DELETE, MOVE and COPY fan out over this listing
// one object at a time; there is no multi-key transaction underneath.
func (s *svc) listAllObjects(ctx context.Context, driver storage.Driver, prefix string) ([]*storage.ObjectInfo, error) {
	var objects []*storage.ObjectInfo
	cursor := ""
	for {
		result, err := driver.List(ctx, storage.ListOptions{Prefix: prefix, Cursor: cursor})
		if err != nil {
			return nil, err
		}
		objects = append(objects, result.Objects...)
		if !result.IsTruncated {
			return objects, nil
		}
		cursor = result.NextCursor
	}
}

// treeInfo builds the entity for a tree key. placeholder is the backing
// zero-byte object when one exists; synthesized trees have no modification
// time of their own.
func (s *svc) treeInfo(key string, placeholder *storage.ObjectInfo) *entities.ObjectInfo {
	info := &entities.ObjectInfo{
		PathSpec:    key,
		Type:        entities.ObjectTypeTree,
		MimeType:    entities.ObjectTypeTreeMimeType,
		Synthesized: placeholder == nil,
	}
	if placeholder != nil {
		info.ModTime = placeholder.ModTime.UnixNano()
		info.ETag = placeholder.ETag
	}
	return info
}

func (s *svc) blobInfo(obj *storage.ObjectInfo) *entities.ObjectInfo {
	info := &entities.ObjectInfo{
		PathSpec: obj.Key,
		Size:     obj.Size,
		Type:     entities.ObjectTypeBLOB,
		ModTime:  obj.ModTime.UnixNano(),
		MimeType: obj.MimeType,
		ETag:     obj.ETag,
		Metadata: obj.Metadata,
	}
	info.MimeType = s.mimeGuesser.FromObjectInfo(info)
	return info
}
