package pathinfo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fbrnila/go-dms-dav/domain"
	"github.com/fbrnila/go-dms-dav/uc"
)

type namer struct {
	mode domain.NamingMode
	repo uc.Repository
}

// NewNamer returns the configured naming strategy, shared by the path
// resolver and the node presenter so a presented name resolves back to
// the same document.
func NewNamer(mode domain.NamingMode, repo uc.Repository) uc.Namer {
	return namer{mode: mode, repo: repo}
}

func (n namer) Resolve(name string, parent *domain.Folder) *domain.Document {
	switch n.mode {
	case domain.NameByOriginalFilename:
		return n.repo.DocumentByOriginalFilename(name, parent)
	case domain.NameByPrefixedFilename:
		// the numeric prefix before the first hyphen carries the
		// document id, the remainder is ignored
		prefix, _, _ := strings.Cut(name, "-")
		id, err := strconv.Atoi(prefix)
		if err != nil || prefix == "" {
			return nil
		}
		doc, err := n.repo.DocumentByID(id)
		if err != nil {
			return nil
		}
		return doc
	default:
		return n.repo.DocumentByName(name, parent)
	}
}

func (n namer) Present(doc *domain.Document) string {
	switch n.mode {
	case domain.NameByOriginalFilename:
		return doc.LatestContent().OriginalFilename
	case domain.NameByPrefixedFilename:
		lc := doc.LatestContent()
		return fmt.Sprintf("%d-%d-%s", doc.ID, lc.Version, lc.OriginalFilename)
	default:
		return doc.Name
	}
}
