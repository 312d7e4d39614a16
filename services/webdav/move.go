package webdav

import (
	"net/http"
	"strings"

	"github.com/davbox/davboxd/codes"
	"github.com/davbox/davboxd/entities"
	"github.com/davbox/davboxd/keys"
	"github.com/davbox/davboxd/storage"
)

// Move implements the WebDAV MOVE method. The store has no rename, so a
// move is a copy followed by a delete, one object at a time for
// directories. A move interrupted halfway leaves both names partially
// populated; retrying the move converges because copies overwrite.
func (s *svc) Move(w http.ResponseWriter, r *http.Request) {
	driver, key, err := s.keyFromRequest(r)
	if err != nil {
		s.handleMoveError(err, w, r)
		return
	}

	destination, overwrite, err := s.moveOrCopyTarget(r)
	if err != nil {
		s.handleMoveError(err, w, r)
		return
	}

	if key == destination || treeKey(key) == treeKey(destination) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	info, err := s.examineObject(r.Context(), driver, key)
	if err != nil {
		s.handleMoveError(err, w, r)
		return
	}

	if overwrite == "F" {
		if _, err := s.examineObject(r.Context(), driver, destination); err == nil {
			w.WriteHeader(http.StatusPreconditionFailed)
			return
		} else if !codes.IsNotFound(err) {
			s.handleMoveError(err, w, r)
			return
		}
	}

	if err := s.copyObjects(r, driver, info, destination, true); err != nil {
		s.handleMoveError(err, w, r)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// moveOrCopyTarget resolves the Destination and Overwrite headers shared
// by MOVE and COPY. A missing Overwrite header defaults to T per RFC 4918.
func (s *svc) moveOrCopyTarget(r *http.Request) (string, string, error) {
	destination, err := s.destinationFromRequest(r)
	if err != nil {
		return "", "", err
	}

	overwrite := strings.ToUpper(r.Header.Get("Overwrite"))
	if overwrite == "" {
		overwrite = "T"
	}
	if overwrite != "T" && overwrite != "F" {
		return "", "", codes.NewErr(codes.BadInputData, "overwrite header must be T or F")
	}
	return destination, overwrite, nil
}

// copyObjects copies the source entity to the destination key, fanning
// out over every object under the prefix when the source is a tree.
// Object metadata travels with each copy. When deleteSource is set every
// copied object is deleted right after its copy lands.
func (s *svc) copyObjects(r *http.Request, driver storage.Driver, source *entities.ObjectInfo, destination string, deleteSource bool) error {
	ctx := r.Context()

	if source.Type == entities.ObjectTypeBLOB {
		if isTreeKey(destination) {
			return codes.NewErr(codes.BadInputData, "cannot copy a blob onto a tree key")
		}
		if err := driver.Copy(ctx, source.PathSpec, destination); err != nil {
			return err
		}
		if deleteSource {
			return driver.Delete(ctx, source.PathSpec)
		}
		return nil
	}

	sourcePrefix := treeKey(source.PathSpec)
	destinationPrefix := treeKey(destination)
	if sourcePrefix == "" {
		return codes.NewErr(codes.BadInputData, "cannot copy the bucket root")
	}

	objects, err := s.listAllObjects(ctx, driver, sourcePrefix)
	if err != nil {
		return err
	}
	for _, obj := range objects {
		target := destinationPrefix + strings.TrimPrefix(obj.Key, sourcePrefix)
		if err := driver.Copy(ctx, obj.Key, target); err != nil {
			return err
		}
		if deleteSource {
			if err := driver.Delete(ctx, obj.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *svc) handleMoveError(err error, w http.ResponseWriter, r *http.Request) {
	log := keys.MustGetLog(r.Context())
	if codeErr, ok := err.(*codes.Err); ok {
		if codeErr.Code == codes.NotFound {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if codeErr.Code == codes.BadInputData {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}
	log.WithError(err).Error("cannot move object")
	w.WriteHeader(http.StatusInternalServerError)
	return
}
