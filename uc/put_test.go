package uc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fbrnila/go-dms-dav/constant"
	"github.com/fbrnila/go-dms-dav/domain"
)

func TestPutCreatesDocument(t *testing.T) {
	f := newFixture(t)

	doc := f.put(t, f.admin, "/report.txt", "quarterly numbers")

	assert.Equal(t, "report.txt", doc.Name)
	assert.Len(t, doc.Versions, 1)
	lc := doc.LatestContent()
	assert.Equal(t, 1, lc.Version)
	assert.Equal(t, constant.TextPlain, lc.MimeType)
	assert.Equal(t, ".txt", lc.FileType)
	assert.Equal(t, "report.txt", lc.OriginalFilename)
	assert.Equal(t, domain.StatusReleased, lc.Status)
	assert.Equal(t, "admin", lc.Author.Login)
}

func TestPutMarkdownReclassified(t *testing.T) {
	f := newFixture(t)

	doc := f.put(t, f.admin, "/notes.md", "# heading\n\nbody text")

	assert.Equal(t, constant.TextMarkdown, doc.LatestContent().MimeType)
	assert.Equal(t, ".md", doc.LatestContent().FileType)
}

func TestPutIdenticalResubmitKeepsVersion(t *testing.T) {
	f := newFixture(t)

	f.put(t, f.admin, "/report.txt", "same bytes")
	doc := f.put(t, f.admin, "/report.txt", "same bytes")

	assert.Len(t, doc.Versions, 1)
}

func TestPutAppendsVersion(t *testing.T) {
	f := newFixture(t)

	f.put(t, f.admin, "/report.txt", "first draft")
	doc := f.put(t, f.admin, "/report.txt", "second draft")

	assert.Len(t, doc.Versions, 2)
	assert.Equal(t, 2, doc.LatestContent().Version)
}

func TestPutReplacesInPlace(t *testing.T) {
	f := newFixture(t, func(cfg *domain.ServerConfig) { cfg.EnableReplaceDoc = true })

	f.put(t, f.admin, "/report.txt", "first draft")
	doc := f.put(t, f.admin, "/report.txt", "second draft")

	assert.Len(t, doc.Versions, 1)
	assert.Equal(t, 1, doc.LatestContent().Version)

	stream, err := f.repo.OpenContent(doc.LatestContent())
	assert.NoError(t, err)
	defer stream.Close()
	buf := make([]byte, 64)
	n, _ := stream.Read(buf)
	assert.Equal(t, "second draft", string(buf[:n]))
}

func TestPutDifferentAuthorAlwaysAppends(t *testing.T) {
	f := newFixture(t, func(cfg *domain.ServerConfig) { cfg.EnableReplaceDoc = true })

	f.put(t, f.admin, "/report.txt", "first draft")
	doc := f.put(t, f.joe, "/report.txt", "second draft")

	assert.Len(t, doc.Versions, 2)
	assert.Equal(t, "joe", doc.LatestContent().Author.Login)
}

func TestPutMissingParent(t *testing.T) {
	f := newFixture(t)

	resp := f.s.Put(f.admin, "/nosuch/report.txt", strings.NewReader("x"))
	assert.Equal(t, 409, resp.Status)
}

func TestPutReadOnlyFolder(t *testing.T) {
	f := newFixture(t)

	folder := f.mkcol(t, f.admin, "/docs")
	f.repo.SetAccess(folder, f.joe.User, domain.AccessRead)

	resp := f.s.Put(f.joe, "/docs/report.txt", strings.NewReader("x"))
	assert.Equal(t, 403, resp.Status)
}

func TestPutReadOnlyDocument(t *testing.T) {
	f := newFixture(t)

	doc := f.put(t, f.admin, "/report.txt", "first draft")
	f.repo.SetAccess(doc, f.joe.User, domain.AccessRead)

	resp := f.s.Put(f.joe, "/report.txt", strings.NewReader("changed"))
	assert.Equal(t, 403, resp.Status)
	assert.Len(t, doc.Versions, 1)
}
