package uc

import (
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/fbrnila/go-dms-dav/constant"
	"github.com/fbrnila/go-dms-dav/domain"
)

// Put buffers the upload to a scratch file, sniffs the true content
// type and either creates a document, refreshes, replaces or appends a
// version, depending on what already exists under the name. The
// scratch file is removed on every exit path.
func (s Interactor) Put(c *Caller, reqPath string, stream io.Reader) *Response {
	s.logger.Info("PUT:", reqPath)

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
		return Respond(409)
	}

	if c.User == nil {
		s.logger.Err("PUT: access forbidden")
		return Respond(403)
	}

	scratch, err := bufferToScratch(stream)
	if err != nil {
		return Respond(500, err.Error())
	}
	defer os.Remove(scratch)

	mimetype, fileType := sniffContent(scratch, name)
	s.logger.Info("PUT: file is of type", mimetype)

	doc := s.namer.Resolve(name, folder)
	if doc == nil {
		return s.putNewDocument(c, folder, name, scratch, fileType, mimetype)
	}
	return s.putExisting(c, doc, name, scratch, fileType, mimetype)
}

func (s Interactor) putNewDocument(c *Caller, folder *domain.Folder, name, scratch, fileType, mimetype string) *Response {
	s.logger.Info("PUT: adding new document")

	if s.repo.AccessMode(folder, c.User) < domain.AccessReadWrite {
		s.logger.Err("PUT: no access on folder")
		return Respond(403)
	}

	doc, err := s.repo.AddDocument(AddDocumentRequest{
		Folder:           folder,
		Name:             name,
		Owner:            c.User,
		Sequence:         s.newSequence(folder),
		File:             scratch,
		OriginalFilename: name,
		FileType:         fileType,
		MimeType:         mimetype,
		Approval:         s.deriveApproval(folder, nil, c.User),
		InitialStatus:    s.Config.InitialDocumentStatus,
	})
	if err != nil {
		s.logger.Err("PUT: error adding document:", err)
		return Respond(409, err.Error())
	}

	s.notifier.NewDocument(doc, c.User)
	return Respond(201)
}

func (s Interactor) putExisting(c *Caller, doc *domain.Document, name, scratch, fileType, mimetype string) *Response {
	s.logger.Info("PUT: saving document id=", doc.ID)

	if s.repo.AccessMode(doc, c.User) < domain.AccessReadWrite {
		s.logger.Err("PUT: no access on document")
		return Respond(403)
	}

	lc := doc.LatestContent()
	sum, err := s.repo.ChecksumFile(scratch)
	if err != nil {
		return Respond(500, err.Error())
	}

	// identical resubmission never produces a new version
	if sum == lc.Checksum {
		s.logger.Info("PUT: identical to latest version")
		if err := s.repo.TouchVersion(doc); err != nil {
			return Respond(409, err.Error())
		}
		return Respond(201)
	}

	replaceable := c.User.ID == lc.Author.ID &&
		name == lc.OriginalFilename &&
		fileType == lc.FileType &&
		mimetype == lc.MimeType &&
		s.Config.EnableReplaceDoc

	req := NewVersionRequest{
		Author:           c.User,
		File:             scratch,
		OriginalFilename: name,
		FileType:         fileType,
		MimeType:         mimetype,
		InitialStatus:    s.Config.InitialDocumentStatus,
	}

	if replaceable {
		s.logger.Info("PUT: replacing latest version")
		if err := s.repo.ReplaceVersion(doc, req); err != nil {
			s.logger.Err("PUT: error replacing latest version:", err)
			return Respond(403)
		}
	} else {
		s.logger.Info("PUT: adding new version")
		req.Approval = s.deriveApproval(doc.Folder, doc, c.User)
		if _, err := s.repo.AddVersion(doc, req); err != nil {
			s.logger.Err("PUT: error adding new version:", err)
			return Respond(409, err.Error())
		}
	}

	s.notifier.NewVersion(doc, c.User)
	return Respond(201)
}

// bufferToScratch drains the request stream into a complete, seekable
// scratch file before any mutation is attempted.
func bufferToScratch(stream io.Reader) (string, error) {
	f, err := os.CreateTemp("", "webdav")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, stream); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// sniffContent detects the true mime type of the buffered upload and
// derives the file-type extension from the supplied name. Detected PDF
// content forces a ".pdf" extension regardless of the name; detected
// plain text named ".md" is reclassified as markdown.
func sniffContent(scratch, name string) (mimetype, fileType string) {
	fileType = path.Ext(name)
	if fileType == "" {
		fileType = "."
	}

	mimetype = detectMime(scratch)
	switch mimetype {
	case constant.AppPDF:
		fileType = ".pdf"
	case constant.TextPlain:
		if fileType == ".md" {
			mimetype = constant.TextMarkdown
		}
	}
	return mimetype, fileType
}

func detectMime(file string) string {
	f, err := os.Open(file)
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := io.ReadFull(f, buf)
	mimetype := http.DetectContentType(buf[:n])
	// strip parameters like "; charset=utf-8"
	if idx := strings.Index(mimetype, ";"); idx >= 0 {
		mimetype = mimetype[:idx]
	}
	return strings.TrimSpace(mimetype)
}
