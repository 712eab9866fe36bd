package memrepo

import (
	"sort"
	"strconv"
	"time"

	"github.com/fbrnila/go-dms-dav/domain"
)

// Snapshot is a flat, serializable image of the repository tree.
// Pointers are reduced to ids; the persistence layer stores it as-is
// and hands it back through Import.
type Snapshot struct {
	NextID    int         `json:"nextId"`
	Users     []UserRec   `json:"users"`
	Folders   []FolderRec `json:"folders"`
	Documents []DocRec    `json:"documents"`
	AttrDefs  []DefRec    `json:"attrDefs"`

	Access        map[string]map[int]domain.AccessMode `json:"access"`
	DefaultAccess domain.AccessMode                    `json:"defaultAccess"`
}

type UserRec struct {
	ID       int    `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"fullName"`
	Admin    bool   `json:"admin"`
	Quota    int64  `json:"quota"`
}

type FolderRec struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Comment  string    `json:"comment"`
	OwnerID  int       `json:"ownerId"`
	ParentID int       `json:"parentId"`
	Date     time.Time `json:"date"`
	Attrs    []AttrRec `json:"attrs,omitempty"`
}

type DocRec struct {
	ID         int          `json:"id"`
	Name       string       `json:"name"`
	Comment    string       `json:"comment"`
	Keywords   string       `json:"keywords"`
	OwnerID    int          `json:"ownerId"`
	FolderID   int          `json:"folderId"`
	Date       time.Time    `json:"date"`
	Expires    time.Time    `json:"expires"`
	Sequence   float64      `json:"sequence"`
	LockedByID int          `json:"lockedById"`
	Versions   []VersionRec `json:"versions"`
	Attrs      []AttrRec    `json:"attrs,omitempty"`
}

type VersionRec struct {
	Version          int       `json:"version"`
	Comment          string    `json:"comment"`
	Date             time.Time `json:"date"`
	StoredPath       string    `json:"storedPath"`
	Checksum         string    `json:"checksum"`
	MimeType         string    `json:"mimeType"`
	FileType         string    `json:"fileType"`
	OriginalFilename string    `json:"originalFilename"`
	Status           int       `json:"status"`
	StatusComment    string    `json:"statusComment"`
	StatusDate       time.Time `json:"statusDate"`
	AuthorID         int       `json:"authorId"`
}

type DefRec struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Type     int    `json:"type"`
	ValueSet string `json:"valueSet"`
	Multi    bool   `json:"multi"`
}

// AttrRec persists scalar attribute values in their wire rendering;
// reference-valued attributes are runtime-only.
type AttrRec struct {
	Def   string `json:"def"`
	Value string `json:"value"`
}

// Export returns a snapshot of the repository.
func (r *Repo) Export() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exportLocked()
}

func (r *Repo) exportLocked() *Snapshot {
	s := &Snapshot{
		NextID:        r.nextID,
		Access:        r.access,
		DefaultAccess: r.defaultAccess,
	}

	for _, u := range r.users {
		s.Users = append(s.Users, UserRec{ID: u.ID, Login: u.Login, FullName: u.FullName, Admin: u.Admin, Quota: u.Quota})
	}
	for _, def := range r.attrDefs {
		s.AttrDefs = append(s.AttrDefs, DefRec{ID: def.ID, Name: def.Name, Type: int(def.Type), ValueSet: def.ValueSet, Multi: def.MultipleValues})
	}
	for _, f := range r.folders {
		rec := FolderRec{ID: f.ID, Name: f.Name, Comment: f.Comment, Date: f.Date, Attrs: exportAttrs(f.Attributes)}
		if f.Owner != nil {
			rec.OwnerID = f.Owner.ID
		}
		if f.Parent != nil {
			rec.ParentID = f.Parent.ID
		}
		s.Folders = append(s.Folders, rec)
	}
	for _, d := range r.documents {
		rec := DocRec{
			ID: d.ID, Name: d.Name, Comment: d.Comment, Keywords: d.Keywords,
			FolderID: d.Folder.ID, Date: d.Date, Expires: d.Expires, Sequence: d.Sequence,
			Attrs: exportAttrs(d.Attributes),
		}
		if d.Owner != nil {
			rec.OwnerID = d.Owner.ID
		}
		if d.LockedBy != nil {
			rec.LockedByID = d.LockedBy.ID
		}
		for _, v := range d.Versions {
			vrec := VersionRec{
				Version: v.Version, Comment: v.Comment, Date: v.Date,
				StoredPath: v.StoredPath, Checksum: v.Checksum,
				MimeType: v.MimeType, FileType: v.FileType,
				OriginalFilename: v.OriginalFilename,
				Status:           int(v.Status), StatusComment: v.StatusComment, StatusDate: v.StatusDate,
			}
			if v.Author != nil {
				vrec.AuthorID = v.Author.ID
			}
			rec.Versions = append(rec.Versions, vrec)
		}
		s.Documents = append(s.Documents, rec)
	}

	sort.Slice(s.Folders, func(i, j int) bool { return s.Folders[i].ID < s.Folders[j].ID })
	sort.Slice(s.Documents, func(i, j int) bool { return s.Documents[i].ID < s.Documents[j].ID })
	sort.Slice(s.Users, func(i, j int) bool { return s.Users[i].ID < s.Users[j].ID })
	return s
}

func exportAttrs(attrs []domain.Attribute) []AttrRec {
	var recs []AttrRec
	for _, a := range attrs {
		v := domain.ScalarString(a.Def.Type, a.Value)
		switch a.Def.Type {
		case domain.AttributeString, domain.AttributeInt, domain.AttributeFloat,
			domain.AttributeBoolean, domain.AttributeDate, domain.AttributeEnum:
			recs = append(recs, AttrRec{Def: a.Def.Name, Value: v})
		}
	}
	return recs
}

// Import rebuilds the repository from a snapshot, replacing the
// current tree.
func (r *Repo) Import(s *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID = s.NextID
	if s.Access != nil {
		r.access = s.Access
	}
	if s.DefaultAccess != domain.AccessNone {
		r.defaultAccess = s.DefaultAccess
	}

	r.users = map[int]*domain.User{}
	for _, rec := range s.Users {
		r.users[rec.ID] = &domain.User{ID: rec.ID, Login: rec.Login, FullName: rec.FullName, Admin: rec.Admin, Quota: rec.Quota}
	}
	r.attrDefs = map[string]*domain.AttributeDefinition{}
	for _, rec := range s.AttrDefs {
		r.attrDefs[rec.Name] = &domain.AttributeDefinition{
			ID: rec.ID, Name: rec.Name, Type: domain.AttributeType(rec.Type),
			ValueSet: rec.ValueSet, MultipleValues: rec.Multi,
		}
	}

	r.folders = map[int]*domain.Folder{}
	for _, rec := range s.Folders {
		r.folders[rec.ID] = &domain.Folder{
			ID: rec.ID, Name: rec.Name, Comment: rec.Comment, Date: rec.Date,
			Owner:      r.users[rec.OwnerID],
			Attributes: r.importAttrs(rec.Attrs),
		}
	}
	for _, rec := range s.Folders {
		f := r.folders[rec.ID]
		if rec.ParentID == 0 {
			r.root = f
			continue
		}
		parent, ok := r.folders[rec.ParentID]
		if !ok {
			return domain.ErrNotFound
		}
		f.Parent = parent
		parent.Subfolders = append(parent.Subfolders, f)
	}

	r.documents = map[int]*domain.Document{}
	for _, rec := range s.Documents {
		folder, ok := r.folders[rec.FolderID]
		if !ok {
			return domain.ErrNotFound
		}
		d := &domain.Document{
			ID: rec.ID, Name: rec.Name, Comment: rec.Comment, Keywords: rec.Keywords,
			Owner: r.users[rec.OwnerID], Folder: folder,
			Date: rec.Date, Expires: rec.Expires, Sequence: rec.Sequence,
			LockedBy:   r.users[rec.LockedByID],
			Attributes: r.importAttrs(rec.Attrs),
		}
		for _, vrec := range rec.Versions {
			d.Versions = append(d.Versions, &domain.ContentVersion{
				Version: vrec.Version, Comment: vrec.Comment, Date: vrec.Date,
				StoredPath: vrec.StoredPath, Checksum: vrec.Checksum,
				MimeType: vrec.MimeType, FileType: vrec.FileType,
				OriginalFilename: vrec.OriginalFilename,
				Status:           domain.Status(vrec.Status), StatusComment: vrec.StatusComment, StatusDate: vrec.StatusDate,
				Author: r.users[vrec.AuthorID],
			})
		}
		folder.Documents = append(folder.Documents, d)
		r.documents[d.ID] = d
	}
	return nil
}

func (r *Repo) importAttrs(recs []AttrRec) []domain.Attribute {
	var attrs []domain.Attribute
	for _, rec := range recs {
		def, ok := r.attrDefs[rec.Def]
		if !ok {
			continue
		}
		var value interface{} = rec.Value
		switch def.Type {
		case domain.AttributeInt:
			value, _ = strconv.Atoi(rec.Value)
		case domain.AttributeFloat:
			value, _ = strconv.ParseFloat(rec.Value, 64)
		case domain.AttributeBoolean:
			value = rec.Value == "1"
		case domain.AttributeDate:
			if epoch, err := strconv.ParseInt(rec.Value, 10, 64); err == nil {
				value = time.Unix(epoch, 0)
			}
		}
		attrs = append(attrs, domain.Attribute{Def: def, Value: value})
	}
	return attrs
}
