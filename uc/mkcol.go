package uc

import (
	"path"
	"strings"

	"github.com/fbrnila/go-dms-dav/domain"
)

// MkCol creates a subfolder under an existing parent folder.
func (s Interactor) MkCol(c *Caller, reqPath string, hasBody bool) *Response {
	s.logger.Info("MKCOL:", reqPath)

	reqPath = strings.TrimSuffix(reqPath, "/")
	parent := path.Dir(reqPath)
	name := path.Base(reqPath)
	if parent == "/" {
		parent = ""
	}

	obj, err := s.pathInformer.Lookup(parent + "/")
	if err != nil {
		return Respond(409)
	}
	folder, ok := obj.(*domain.Folder)
	if !ok {
		s.logger.Err("MKCOL: access forbidden")
		return Respond(403)
	}

	if s.repo.FolderByName(name, folder) != nil {
		return Respond(405)
	}

	if hasBody { // no body parsing yet
		return Respond(415)
	}

	if c.User == nil {
		s.logger.Err("MKCOL: access forbidden")
		return Respond(403)
	}

	if s.repo.AccessMode(folder, c.User) < domain.AccessReadWrite {
		s.logger.Err("MKCOL: access forbidden")
		return Respond(403)
	}

	sub, err := s.repo.AddFolder(folder, name, c.User)
	if err != nil {
		return Respond(409, err.Error())
	}

	s.notifier.NewFolder(sub, c.User)
	return Respond(201)
}
