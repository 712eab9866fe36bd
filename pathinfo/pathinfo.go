package pathinfo

import (
	"strings"

	"github.com/fbrnila/go-dms-dav/domain"
	"github.com/fbrnila/go-dms-dav/uc"
)

type pathResolver struct {
	repo  uc.Repository
	namer uc.Namer
}

// New returns a resolver mapping absolute slash paths onto repository
// nodes. A trailing slash pins the final segment to a folder; callers
// retry with one appended when a first lookup fails, since the wire
// protocol does not reliably tell folders from documents.
func New(repo uc.Repository, namer uc.Namer) uc.PathInformer {
	return pathResolver{repo: repo, namer: namer}
}

func (r pathResolver) Lookup(path string) (domain.Node, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return r.repo.RootFolder(), nil
	}

	segs := strings.Split(path, "/")
	// The last entry is always the document name, empty if the path
	// ends in '/'.
	docname := segs[len(segs)-1]
	folder := r.repo.RootFolder()
	for _, seg := range segs[:len(segs)-1] {
		sub := r.repo.FolderByName(seg, folder)
		if sub == nil {
			return nil, domain.ErrNotFound
		}
		folder = sub
	}

	if docname == "" {
		return folder, nil
	}
	if doc := r.namer.Resolve(docname, folder); doc != nil {
		return doc, nil
	}
	return nil, domain.ErrNotFound
}
