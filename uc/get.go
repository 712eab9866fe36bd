package uc

import (
	"io"
	"strings"
	"time"

	"github.com/fbrnila/go-dms-dav/domain"
)

// GetResult carries what the dispatcher needs to answer a GET: either
// a rendered directory index or the document stream with its metadata.
type GetResult struct {
	HTML string

	Stream  io.ReadCloser
	Size    int64
	Mime    string
	ModTime time.Time
	Name    string
}

// Get streams a document's latest content, or renders the HTML index
// when the target is a folder (non-standard collection GET; the
// dispatcher writes the page and terminates the response itself).
func (s Interactor) Get(c *Caller, path string) (*GetResult, *Response) {
	s.logger.Info("GET:", path)

	obj, err := s.pathInformer.Lookup(path)
	if err != nil {
		return nil, Respond(404)
	}

	switch n := obj.(type) {
	case *domain.Folder:
		return s.getDir(c, n, path)
	case *domain.Document:
		lc := n.LatestContent()
		stream, err := s.repo.OpenContent(lc)
		if err != nil {
			return nil, Respond(404)
		}
		return &GetResult{
			Stream:  stream,
			Size:    s.repo.ContentSize(lc),
			Mime:    lc.MimeType,
			ModTime: lc.Date,
			Name:    s.namer.Present(n),
		}, Respond(200)
	}
	return nil, Respond(404)
}

// getDir builds the directory index rows, filtered exactly like a
// PROPFIND listing.
func (s Interactor) getDir(c *Caller, folder *domain.Folder, path string) (*GetResult, *Response) {
	base := folder.Path()
	if base != "/" {
		base += "/"
	}

	var entries []DirEntry
	for _, sub := range s.listableSubfolders(c, folder) {
		entries = append(entries, DirEntry{
			Name:    sub.Name + "/",
			Href:    base + sub.Name + "/",
			ModTime: sub.Date,
		})
	}
	for _, doc := range s.listableDocuments(c, folder) {
		lc := doc.LatestContent()
		name := s.namer.Present(doc)
		entries = append(entries, DirEntry{
			Name:    name,
			Href:    base + name,
			Size:    s.repo.ContentSize(lc),
			ModTime: lc.Date,
			Mime:    lc.MimeType,
		})
	}

	parent := ""
	if !folder.IsRoot() {
		parent = folder.Parent.Path()
		if !strings.HasSuffix(parent, "/") {
			parent += "/"
		}
	}

	return &GetResult{HTML: s.renderer.Index(path, parent, entries)}, Respond(200)
}
