// Package server is the HTTP front of the repository: it authenticates
// the caller, parses the protocol headers and bodies, dispatches to the
// verb handlers and renders their answers back onto the wire.
package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/fbrnila/go-dms-dav/constant"
	"github.com/fbrnila/go-dms-dav/domain"
	"github.com/fbrnila/go-dms-dav/uc"
)

// SessionStore caches authenticated logins across requests.
type SessionStore interface {
	SetSessionCookie(w http.ResponseWriter, login string) error
	LoginFromRequest(r *http.Request) string
}

// UserSource resolves a cached session login back to its account.
type UserSource interface {
	UserByLogin(login string) (*domain.User, error)
}

type Server struct {
	interactor    uc.Interactor
	repo          uc.Repository
	authenticator uc.Authenticator
	users         UserSource
	sessions      SessionStore
	logger        uc.Debug
}

func New(interactor uc.Interactor, repo uc.Repository, authenticator uc.Authenticator, users UserSource, sessions SessionStore, logger uc.Debug) *Server {
	return &Server{
		interactor:    interactor,
		repo:          repo,
		authenticator: authenticator,
		users:         users,
		sessions:      sessions,
		logger:        logger,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	// litmus tags its requests, echoing the tag helps reading traces
	if tag := req.Header.Get("X-Litmus"); tag != "" {
		w.Header().Set("X-Litmus", tag)
	}

	c, ok := s.authenticate(w, req)
	if !ok {
		return
	}

	p := req.URL.Path
	if p == "" {
		p = "/"
	}
	s.logger.Debug(req.Method, p, "user="+c.User.Login)

	switch req.Method {
	case "OPTIONS":
		s.handleOptions(w)
	case "HEAD":
		s.handleGet(w, c, p, false)
	case "GET":
		s.handleGet(w, c, p, true)
	case "PUT":
		if s.refuseLocked(w, c, p) {
			return
		}
		writeResponse(w, s.interactor.Put(c, p, req.Body))
	case "MKCOL":
		writeResponse(w, s.interactor.MkCol(c, p, hasBody(req)))
	case "DELETE":
		if s.refuseLocked(w, c, p) {
			return
		}
		writeResponse(w, s.interactor.Delete(c, p))
	case "PROPFIND":
		s.handlePropFind(w, req, c, p)
	case "PROPPATCH":
		s.handlePropPatch(w, req, c, p)
	case "MOVE":
		s.handleMove(w, req, c, p)
	case "COPY":
		s.handleCopy(w, req, c, p)
	case "LOCK":
		if s.refuseLocked(w, c, p) {
			return
		}
		s.handleLock(w, req, c, p)
	case "UNLOCK":
		if s.refuseLocked(w, c, p) {
			return
		}
		writeResponse(w, s.interactor.Unlock(c, p, parseDepth(req, 0)))
	default:
		w.Header().Set("Allow", strings.Join(constant.AllMethods(), ", "))
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// authenticate resolves the caller from the session cookie or Basic
// credentials, challenging with 401 when neither works.
func (s *Server) authenticate(w http.ResponseWriter, req *http.Request) (*uc.Caller, bool) {
	if login := s.sessions.LoginFromRequest(req); login != "" {
		if user, err := s.users.UserByLogin(login); err == nil {
			return s.caller(user), true
		}
	}

	if login, pass, ok := req.BasicAuth(); ok {
		user, err := s.authenticator.Authenticate(login, pass)
		if err == nil {
			if err := s.sessions.SetSessionCookie(w, user.Login); err != nil {
				s.logger.Err("session cookie:", err)
			}
			return s.caller(user), true
		}
		s.logger.Err("authentication failed for", login)
	}

	w.Header().Set("WWW-Authenticate", `Basic realm="document repository"`)
	http.Error(w, "401 Unauthorized", http.StatusUnauthorized)
	return nil, false
}

func (s *Server) caller(u *domain.User) *uc.Caller {
	return &uc.Caller{User: u, DiskUsage: s.repo.UsedDiskSpace(u)}
}

// refuseLocked answers 423 when any of the given paths resolves to a
// document locked by someone else.
func (s *Server) refuseLocked(w http.ResponseWriter, c *uc.Caller, paths ...string) bool {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if info := s.interactor.CheckLock(c, p); info != nil {
			w.Header().Set(constant.HCType, constant.TextPlain)
			w.WriteHeader(http.StatusLocked)
			fmt.Fprintf(w, "423 Locked resource locked by %s\n", info.Owner)
			return true
		}
	}
	return false
}

func (s *Server) handleOptions(w http.ResponseWriter) {
	w.Header().Set("DAV", "1, 2")
	w.Header().Set("Allow", strings.Join(constant.AllMethods(), ", "))
	w.Header().Set("MS-Author-Via", "DAV")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGet(w http.ResponseWriter, c *uc.Caller, p string, withBody bool) {
	res, resp := s.interactor.Get(c, p)
	if !resp.OK() {
		writeResponse(w, resp)
		return
	}

	if res.HTML != "" {
		w.Header().Set(constant.HCType, "text/html; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(res.HTML)))
		w.WriteHeader(http.StatusOK)
		if withBody {
			io.WriteString(w, res.HTML)
		}
		return
	}

	defer res.Stream.Close()
	w.Header().Set(constant.HCType, res.Mime)
	w.Header().Set("Content-Length", strconv.FormatInt(res.Size, 10))
	w.Header().Set("Last-Modified", res.ModTime.UTC().Format(http.TimeFormat))
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Name+`"`)
	w.WriteHeader(http.StatusOK)
	if withBody {
		if _, err := io.Copy(w, res.Stream); err != nil {
			s.logger.Err("GET: streaming", p, "failed:", err)
		}
	}
}

func (s *Server) handlePropFind(w http.ResponseWriter, req *http.Request, c *uc.Caller, p string) {
	nameOnly, requested, err := parsePropfind(req.Body)
	if err != nil {
		http.Error(w, "400 Bad Request malformed propfind body", http.StatusBadRequest)
		return
	}

	infos, resp := s.interactor.PropFind(c, p, parseDepth(req, uc.DepthInfinity))
	if !resp.OK() {
		writeResponse(w, resp)
		return
	}

	writeXML(w, http.StatusMultiStatus, renderMultistatus(infos, nameOnly, requested))
}

func (s *Server) handlePropPatch(w http.ResponseWriter, req *http.Request, c *uc.Caller, p string) {
	props, err := parsePropPatch(req.Body)
	if err != nil {
		http.Error(w, "400 Bad Request malformed propertyupdate body", http.StatusBadRequest)
		return
	}
	if s.refuseLocked(w, c, p) {
		return
	}

	results, resp := s.interactor.PropPatch(c, p, props)
	if !resp.OK() {
		writeResponse(w, resp)
		return
	}

	writeXML(w, http.StatusMultiStatus, renderPropPatchStatus(p, results))
}

func (s *Server) handleMove(w http.ResponseWriter, req *http.Request, c *uc.Caller, p string) {
	dest, destURL, err := parseDestination(req)
	if err != nil {
		http.Error(w, "400 Bad Request malformed destination", http.StatusBadRequest)
		return
	}
	if s.refuseLocked(w, c, p, dest) {
		return
	}
	writeResponse(w, s.interactor.Move(c, p, dest, destURL, parseOverwrite(req)))
}

func (s *Server) handleCopy(w http.ResponseWriter, req *http.Request, c *uc.Caller, p string) {
	dest, destURL, err := parseDestination(req)
	if err != nil {
		http.Error(w, "400 Bad Request malformed destination", http.StatusBadRequest)
		return
	}
	if s.refuseLocked(w, c, dest) {
		return
	}
	writeResponse(w, s.interactor.Copy(c, p, dest, destURL, parseOverwrite(req), parseDepth(req, uc.DepthInfinity), hasBody(req)))
}

func (s *Server) handleLock(w http.ResponseWriter, req *http.Request, c *uc.Caller, p string) {
	lock, resp := s.interactor.Lock(c, p, parseDepth(req, 0))
	if !resp.OK() {
		writeResponse(w, resp)
		return
	}
	if lock == nil {
		// target does not exist, grant nothing but do not fail
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Lock-Token", "<"+lock.Token+">")
	writeXML(w, http.StatusOK, renderLockDiscovery(lock))
}

func writeXML(w http.ResponseWriter, status int, body string) {
	w.Header().Set(constant.HCType, "text/xml; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// writeResponse maps a verb outcome onto the wire. Any detail rides in
// a short text body since reason phrases cannot be customized.
func writeResponse(w http.ResponseWriter, resp *uc.Response) {
	if resp.OK() && resp.Detail == "" {
		w.WriteHeader(resp.Status)
		return
	}
	w.Header().Set(constant.HCType, constant.TextPlain)
	w.WriteHeader(resp.Status)
	fmt.Fprintln(w, resp.StatusLine())
}
