package memrepo

import (
	"fmt"
	"time"

	"github.com/fbrnila/go-dms-dav/domain"
	"github.com/fbrnila/go-dms-dav/uc"
)

func lockedByOther(d *domain.Document, u *domain.User) bool {
	return d.LockedBy != nil && (u == nil || d.LockedBy.ID != u.ID)
}

func (r *Repo) AddFolder(parent *domain.Folder, name string, owner *domain.User) (*domain.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := &domain.Folder{
		ID:     r.takeID(),
		Name:   name,
		Owner:  owner,
		Parent: parent,
		Date:   r.now(),
	}
	parent.Subfolders = append(parent.Subfolders, sub)
	parent.Date = r.now()
	r.folders[sub.ID] = sub
	r.mutated()
	return sub, nil
}

func (r *Repo) RemoveFolder(f *domain.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.Parent == nil {
		return fmt.Errorf("cannot remove the root folder")
	}
	if len(f.Subfolders) > 0 || len(f.Documents) > 0 {
		return domain.ErrNotEmpty
	}

	f.Parent.Subfolders = removeFolderFrom(f.Parent.Subfolders, f)
	f.Parent.Date = r.now()
	delete(r.folders, f.ID)
	r.mutated()
	return nil
}

func (r *Repo) AddDocument(req uc.AddDocumentRequest) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, sum, err := r.storeContent(req.File)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:       r.takeID(),
		Name:     req.Name,
		Owner:    req.Owner,
		Folder:   req.Folder,
		Date:     r.now(),
		Sequence: req.Sequence,
	}
	doc.Versions = append(doc.Versions, &domain.ContentVersion{
		Version:          1,
		Date:             r.now(),
		StoredPath:       stored,
		Checksum:         sum,
		MimeType:         req.MimeType,
		FileType:         req.FileType,
		OriginalFilename: req.OriginalFilename,
		Status:           req.InitialStatus,
		StatusDate:       r.now(),
		Author:           req.Owner,
	})

	req.Folder.Documents = append(req.Folder.Documents, doc)
	req.Folder.Date = r.now()
	r.documents[doc.ID] = doc
	r.mutated()
	return doc, nil
}

func (r *Repo) RemoveDocument(d *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range d.Versions {
		r.removeContent(v)
	}
	d.Folder.Documents = removeDocumentFrom(d.Folder.Documents, d)
	d.Folder.Date = r.now()
	delete(r.documents, d.ID)
	r.mutated()
	return nil
}

func (r *Repo) AddVersion(d *domain.Document, req uc.NewVersionRequest) (*domain.ContentVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lockedByOther(d, req.Author) {
		return nil, domain.ErrLocked
	}

	stored, sum, err := r.storeContent(req.File)
	if err != nil {
		return nil, err
	}

	v := &domain.ContentVersion{
		Version:          d.LatestContent().Version + 1,
		Date:             r.now(),
		StoredPath:       stored,
		Checksum:         sum,
		MimeType:         req.MimeType,
		FileType:         req.FileType,
		OriginalFilename: req.OriginalFilename,
		Status:           req.InitialStatus,
		StatusDate:       r.now(),
		Author:           req.Author,
	}
	d.Versions = append(d.Versions, v)
	r.mutated()
	return v, nil
}

func (r *Repo) ReplaceVersion(d *domain.Document, req uc.NewVersionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lockedByOther(d, req.Author) {
		return domain.ErrLocked
	}

	stored, sum, err := r.storeContent(req.File)
	if err != nil {
		return err
	}

	lc := d.LatestContent()
	r.removeContent(lc)
	lc.StoredPath = stored
	lc.Checksum = sum
	lc.MimeType = req.MimeType
	lc.FileType = req.FileType
	lc.OriginalFilename = req.OriginalFilename
	lc.Date = r.now()
	lc.Author = req.Author
	r.mutated()
	return nil
}

func (r *Repo) TouchVersion(d *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.LatestContent().Date = r.now()
	r.mutated()
	return nil
}

func (r *Repo) SetDocumentFolder(d *domain.Document, f *domain.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := d.Folder
	old.Documents = removeDocumentFrom(old.Documents, d)
	old.Date = r.now()
	d.Folder = f
	f.Documents = append(f.Documents, d)
	f.Date = r.now()
	r.mutated()
	return nil
}

func (r *Repo) SetFolderParent(f *domain.Folder, parent *domain.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.Parent == nil {
		return fmt.Errorf("cannot move the root folder")
	}
	// refuse a move into the folder's own subtree
	for p := parent; p != nil; p = p.Parent {
		if p == f {
			return fmt.Errorf("cannot move a folder below itself")
		}
	}

	f.Parent.Subfolders = removeFolderFrom(f.Parent.Subfolders, f)
	f.Parent.Date = r.now()
	f.Parent = parent
	parent.Subfolders = append(parent.Subfolders, f)
	parent.Date = r.now()
	r.mutated()
	return nil
}

func (r *Repo) SetName(n domain.Node, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch node := n.(type) {
	case *domain.Folder:
		node.Name = name
	case *domain.Document:
		node.Name = name
	}
	r.mutated()
	return nil
}

func (r *Repo) SetComment(n domain.Node, comment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch node := n.(type) {
	case *domain.Folder:
		node.Comment = comment
	case *domain.Document:
		node.Comment = comment
	}
	r.mutated()
	return nil
}

func (r *Repo) SetExpires(d *domain.Document, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.Expires = expires
	r.mutated()
	return nil
}

func (r *Repo) SetAttribute(n domain.Node, def *domain.AttributeDefinition, value interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	attrs := nodeAttrs(n)
	for i := range *attrs {
		if (*attrs)[i].Def == def {
			(*attrs)[i].Value = value
			r.mutated()
			return nil
		}
	}
	*attrs = append(*attrs, domain.Attribute{Def: def, Value: value})
	r.mutated()
	return nil
}

func nodeAttrs(n domain.Node) *[]domain.Attribute {
	switch node := n.(type) {
	case *domain.Folder:
		return &node.Attributes
	case *domain.Document:
		return &node.Attributes
	}
	return nil
}

func (r *Repo) Lock(n domain.Node, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := n.(*domain.Document)
	if !ok {
		return fmt.Errorf("folders cannot be locked")
	}
	if lockedByOther(doc, u) {
		return domain.ErrLocked
	}
	doc.LockedBy = u
	r.mutated()
	return nil
}

func (r *Repo) Unlock(n domain.Node, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := n.(*domain.Document)
	if !ok {
		return fmt.Errorf("folders cannot be locked")
	}
	if lockedByOther(doc, u) {
		return domain.ErrLocked
	}
	doc.LockedBy = nil
	r.mutated()
	return nil
}

func removeFolderFrom(list []*domain.Folder, f *domain.Folder) []*domain.Folder {
	for i, it := range list {
		if it == f {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func removeDocumentFrom(list []*domain.Document, d *domain.Document) []*domain.Document {
	for i, it := range list {
		if it == d {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
