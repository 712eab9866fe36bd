package uc

import (
	"github.com/fbrnila/go-dms-dav/domain"
)

// PropFind resolves the target and renders its properties, plus one
// entry per accessible child when the target is a folder and a depth
// was requested. Child documents are filtered to released status for
// non-administrators; the directly addressed node never is.
func (s Interactor) PropFind(c *Caller, path string, depth int) ([]NodeInfo, *Response) {
	s.logger.Info("PROPFIND:", path)

	obj, err := s.lookupRetry(path)
	if err != nil {
		return nil, Respond(404)
	}

	infos := []NodeInfo{s.fileinfo(c, obj)}

	if folder, ok := obj.(*domain.Folder); ok && depth != 0 {
		for _, sub := range s.listableSubfolders(c, folder) {
			infos = append(infos, s.fileinfo(c, sub))
		}
		for _, doc := range s.listableDocuments(c, folder) {
			infos = append(infos, s.fileinfo(c, doc))
		}
	}

	return infos, Respond(207)
}

// listableDocuments filters a folder's documents by the caller's access
// grade, and to released status unless the caller is an administrator.
func (s Interactor) listableDocuments(c *Caller, folder *domain.Folder) []*domain.Document {
	var docs []*domain.Document
	for _, doc := range folder.Documents {
		if s.repo.AccessMode(doc, c.User) < domain.AccessRead {
			continue
		}
		if !c.User.Admin && doc.LatestContent().Status != domain.StatusReleased {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

// listableSubfolders filters a folder's subfolders by the caller's
// access grade.
func (s Interactor) listableSubfolders(c *Caller, folder *domain.Folder) []*domain.Folder {
	var subs []*domain.Folder
	for _, sub := range folder.Subfolders {
		if s.repo.AccessMode(sub, c.User) >= domain.AccessRead {
			subs = append(subs, sub)
		}
	}
	return subs
}
