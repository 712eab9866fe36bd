package uc

import (
	"github.com/fbrnila/go-dms-dav/domain"
)

// Delete removes a document, or an empty folder. Deleting anything
// requires full control on the node.
func (s Interactor) Delete(c *Caller, path string) *Response {
	s.logger.Info("DELETE:", path)

	obj, err := s.lookupRetry(path)
	if err != nil {
		return Respond(404)
	}

	if s.repo.AccessMode(obj, c.User) < domain.AccessAll {
		s.logger.Err("DELETE: access forbidden")
		return Respond(403)
	}

	switch n := obj.(type) {
	case *domain.Folder:
		if len(n.Documents) > 0 || len(n.Subfolders) > 0 {
			s.logger.Err("DELETE: cannot delete, folder has children")
			return Respond(409)
		}
		if err := s.repo.RemoveFolder(n); err != nil {
			return Respond(409, err.Error())
		}
	case *domain.Document:
		if err := s.repo.RemoveDocument(n); err != nil {
			return Respond(409, err.Error())
		}
	}

	s.notifier.Deleted(obj, c.User)
	return Respond(204)
}
