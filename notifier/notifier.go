// Package notifier delivers repository change events. Delivery is
// fire-and-forget: failures are logged, never surfaced.
package notifier

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/fbrnila/go-dms-dav/domain"
	"github.com/fbrnila/go-dms-dav/uc"
)

type logNotifier struct {
	log zerolog.Logger
}

// New returns a notifier writing one event line per change to w.
func New(w io.Writer) uc.Notifier {
	if w == nil {
		return logNotifier{log: zerolog.Nop()}
	}
	return logNotifier{log: zerolog.New(w).With().Timestamp().Str("component", "notifier").Logger()}
}

func (n logNotifier) NewDocument(doc *domain.Document, by *domain.User) {
	n.event("new-document", by).Int("id", doc.ID).Str("name", doc.Name).Send()
}

func (n logNotifier) NewVersion(doc *domain.Document, by *domain.User) {
	n.event("new-version", by).Int("id", doc.ID).Int("version", doc.LatestContent().Version).Send()
}

func (n logNotifier) NewFolder(folder *domain.Folder, by *domain.User) {
	n.event("new-folder", by).Int("id", folder.ID).Str("name", folder.Name).Send()
}

func (n logNotifier) Moved(node domain.Node, from *domain.Folder, by *domain.User) {
	e := n.event("moved", by).Int("id", node.NodeID()).Str("name", node.NodeName())
	if from != nil {
		e = e.Str("from", from.Path())
	}
	e.Send()
}

func (n logNotifier) Deleted(node domain.Node, by *domain.User) {
	n.event("deleted", by).Int("id", node.NodeID()).Str("name", node.NodeName()).Send()
}

func (n logNotifier) event(kind string, by *domain.User) *zerolog.Event {
	e := n.log.Info().Str("event", kind)
	if by != nil {
		e = e.Str("user", by.Login)
	}
	return e
}
