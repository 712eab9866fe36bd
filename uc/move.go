package uc

import (
	"path"

	"github.com/fbrnila/go-dms-dav/domain"
)

// resolveDest resolves a MOVE/COPY destination. When the literal path
// resolves to nothing, its basename becomes a rename target and the
// parent directory is resolved instead.
func (s Interactor) resolveDest(dest string) (domain.Node, string, *Response) {
	if obj, err := s.pathInformer.Lookup(dest); err == nil {
		return obj, "", nil
	}

	dirname := path.Dir(dest)
	if dirname != "/" {
		dirname += "/"
	}
	newname := path.Base(dest)
	obj, err := s.pathInformer.Lookup(dirname)
	if err != nil {
		return nil, "", Respond(412)
	}
	return obj, newname, nil
}

// Move relocates a node. A document destination is overwritten by
// appending the source's latest content as a new version and removing
// the source; a folder destination reassigns the source's parent, with
// an optional rename.
func (s Interactor) Move(c *Caller, srcPath, dest, destURL string, overwrite bool) *Response {
	s.logger.Info("MOVE:", srcPath, "->", dest)

	// no moving to different WebDAV servers yet
	if destURL != "" {
		return Respond(502)
	}

	source, err := s.lookupRetry(srcPath)
	if err != nil {
		return Respond(404)
	}

	objdest, newname, resp := s.resolveDest(dest)
	if resp != nil {
		return resp
	}

	// moving requires write access on both ends
	if s.repo.AccessMode(source, c.User) < domain.AccessReadWrite ||
		s.repo.AccessMode(objdest, c.User) < domain.AccessReadWrite {
		s.logger.Err("MOVE: access forbidden")
		return Respond(403)
	}

	switch destNode := objdest.(type) {
	case *domain.Document:
		if !overwrite {
			return Respond(412)
		}
		srcDoc, ok := source.(*domain.Document)
		if !ok {
			return Respond(400)
		}

		lc := srcDoc.LatestContent()
		if _, err := s.repo.AddVersion(destNode, NewVersionRequest{
			Author:           c.User,
			File:             s.repo.ContentPath(lc),
			OriginalFilename: lc.OriginalFilename,
			FileType:         lc.FileType,
			MimeType:         lc.MimeType,
			InitialStatus:    s.Config.InitialDocumentStatus,
		}); err != nil {
			return Respond(409)
		}
		if err := s.repo.RemoveDocument(srcDoc); err != nil {
			return Respond(409, err.Error())
		}
		return Respond(204)

	case *domain.Folder:
		switch srcNode := source.(type) {
		case *domain.Document:
			if !s.Config.EnableDuplicateDocNames {
				target := srcNode.Name
				if newname != "" {
					target = newname
				}
				if destNode.HasDocumentNamed(target) {
					return Respond(403)
				}
			}
			oldFolder := srcNode.Folder
			if err := s.repo.SetDocumentFolder(srcNode, destNode); err != nil {
				return Respond(500)
			}
			s.notifier.Moved(srcNode, oldFolder, c.User)

		case *domain.Folder:
			if !s.Config.EnableDuplicateSubfolderNames {
				target := srcNode.Name
				if newname != "" {
					target = newname
				}
				if destNode.HasSubfolderNamed(target) {
					return Respond(403)
				}
			}
			oldParent := srcNode.Parent
			if err := s.repo.SetFolderParent(srcNode, destNode); err != nil {
				return Respond(500)
			}
			s.notifier.Moved(srcNode, oldParent, c.User)
		}

		if newname != "" {
			if err := s.repo.SetName(source, newname); err != nil {
				return Respond(500)
			}
		}
		return Respond(204)
	}
	return Respond(500)
}
