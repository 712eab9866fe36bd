package uc

import (
	"github.com/fbrnila/go-dms-dav/domain"
)

// DepthInfinity is the normalized form of the "Depth: infinity"
// request header.
const DepthInfinity = -1

// Copy duplicates a document. A document destination gains the
// source's latest content as a new version (skipped entirely when the
// checksums already match); a folder destination gets a brand-new
// document. Folder sources are only accepted at infinite depth and
// there is no folder-to-folder copy.
func (s Interactor) Copy(c *Caller, srcPath, dest, destURL string, overwrite bool, depth int, hasBody bool) *Response {
	s.logger.Info("COPY:", srcPath, "->", dest)

	if hasBody { // no body parsing yet
		return Respond(415)
	}

	// no copying to different WebDAV servers yet
	if destURL != "" {
		return Respond(502)
	}

	source, err := s.lookupRetry(srcPath)
	if err != nil {
		return Respond(404)
	}

	if _, ok := source.(*domain.Folder); ok && depth != DepthInfinity {
		// RFC 2518 section 9.2, last paragraph
		return Respond(400)
	}

	objdest, newname, resp := s.resolveDest(dest)
	if resp != nil {
		return resp
	}

	// copying requires read on the source and write on the destination
	if s.repo.AccessMode(source, c.User) < domain.AccessRead ||
		s.repo.AccessMode(objdest, c.User) < domain.AccessReadWrite {
		s.logger.Err("COPY: access forbidden")
		return Respond(403)
	}

	switch destNode := objdest.(type) {
	case *domain.Document:
		if !overwrite {
			return Respond(412)
		}
		srcDoc, ok := source.(*domain.Document)
		if !ok {
			// copying a folder into a document makes no sense
			return Respond(400)
		}

		lc := srcDoc.LatestContent()
		if lc.Checksum == destNode.LatestContent().Checksum {
			return Respond(204)
		}
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
		return Respond(204)

	case *domain.Folder:
		srcDoc, ok := source.(*domain.Document)
		if !ok {
			// no support for copying folders
			s.logger.Info("COPY: source is a folder", source.NodeName())
			return Respond(400)
		}
		s.logger.Info("COPY: copy", srcDoc.Name, "to folder", destNode.Name)

		if newname == "" {
			newname = srcDoc.Name
		}

		lc := srcDoc.LatestContent()
		doc, err := s.repo.AddDocument(AddDocumentRequest{
			Folder:           destNode,
			Name:             newname,
			Owner:            c.User,
			Sequence:         s.newSequence(destNode),
			File:             s.repo.ContentPath(lc),
			OriginalFilename: lc.OriginalFilename,
			FileType:         lc.FileType,
			MimeType:         lc.MimeType,
			Approval:         s.deriveApproval(destNode, nil, c.User),
			InitialStatus:    s.Config.InitialDocumentStatus,
		})
		if err != nil {
			s.logger.Err("COPY: error copying object:", err)
			return Respond(409, err.Error())
		}

		s.notifier.NewDocument(doc, c.User)
		return Respond(201)
	}
	return Respond(500)
}
