package server_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbrnila/go-dms-dav/auth"
	"github.com/fbrnila/go-dms-dav/domain"
	"github.com/fbrnila/go-dms-dav/logger"
	"github.com/fbrnila/go-dms-dav/memrepo"
	"github.com/fbrnila/go-dms-dav/pages"
	"github.com/fbrnila/go-dms-dav/pathinfo"
	"github.com/fbrnila/go-dms-dav/server"
	"github.com/fbrnila/go-dms-dav/uc"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := domain.ServerConfig{
		Naming:                domain.NameByDocument,
		WorkflowMode:          domain.WorkflowTraditional,
		DefaultDocPosition:    domain.DocPositionEnd,
		InitialDocumentStatus: domain.StatusReleased,
		CookieAge:             1,
	}

	repo := memrepo.New(t.TempDir())
	repo.AddUser(&domain.User{Login: "admin", Admin: true})
	repo.AddUser(&domain.User{Login: "joe"})

	creds := map[string]string{
		"admin": auth.HashPassword("adminpw"),
		"joe":   auth.HashPassword("joepw"),
	}

	namer := pathinfo.NewNamer(cfg.Naming, repo)
	informer := pathinfo.New(repo, namer)
	interactor := uc.NewInteractor(cfg, repo, informer, namer, nil, pages.New(), nil)

	srv := server.New(interactor, repo, auth.New(repo, creds), repo, auth.NewSessions(cfg.CookieAge), logger.Nop())

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, user, pass, body string, headers map[string]string) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestUnauthenticatedChallenge(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, "PROPFIND", "/", "", "", "", nil)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Basic")
}

func TestWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, "PROPFIND", "/", "admin", "wrong", "", nil)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestOptions(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, "OPTIONS", "/", "admin", "adminpw", "", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "1, 2", resp.Header.Get("DAV"))
	assert.Contains(t, resp.Header.Get("Allow"), "PROPFIND")
}

func TestPutThenGet(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, "PUT", "/report.txt", "admin", "adminpw", "the contents", nil)
	assert.Equal(t, 201, resp.StatusCode)

	resp = do(t, ts, "GET", "/report.txt", "admin", "adminpw", "", nil)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "the contents", string(body))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="report.txt"`)
}

func TestHeadOmitsBody(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, "PUT", "/report.txt", "admin", "adminpw", "the contents", nil)

	resp := do(t, ts, "HEAD", "/report.txt", "admin", "adminpw", "", nil)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body)
}

func TestGetFolderIndex(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, "PUT", "/report.txt", "admin", "adminpw", "bytes", nil)

	resp := do(t, ts, "GET", "/", "admin", "adminpw", "", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "report.txt")
}

func TestPropFindMultistatus(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, "PUT", "/report.txt", "admin", "adminpw", "bytes", nil)

	resp := do(t, ts, "PROPFIND", "/", "admin", "adminpw", "", map[string]string{"Depth": "1"})
	assert.Equal(t, 207, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/xml")

	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	assert.Contains(t, s, "<D:multistatus")
	assert.Contains(t, s, "<D:href>/report.txt</D:href>")
	assert.Contains(t, s, "<D:collection/>")
	assert.Contains(t, s, "report.txt")
}

func TestPropFindNamedProps(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, "PUT", "/report.txt", "admin", "adminpw", "bytes", nil)

	body := `<?xml version="1.0"?>
<D:propfind xmlns:D="DAV:"><D:prop><D:displayname/><D:nosuchprop/></D:prop></D:propfind>`

	resp := do(t, ts, "PROPFIND", "/report.txt", "admin", "adminpw", body, map[string]string{"Depth": "0"})
	assert.Equal(t, 207, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	s := string(raw)
	assert.Contains(t, s, "<D:displayname>report.txt</D:displayname>")
	assert.Contains(t, s, "404 Not Found")
	assert.Contains(t, s, "<D:nosuchprop/>")
}

func TestMkColAndDelete(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, "MKCOL", "/projects", "admin", "adminpw", "", nil)
	assert.Equal(t, 201, resp.StatusCode)

	resp = do(t, ts, "MKCOL", "/projects", "admin", "adminpw", "", nil)
	assert.Equal(t, 405, resp.StatusCode)

	resp = do(t, ts, "DELETE", "/projects", "admin", "adminpw", "", nil)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestMoveWithDestinationHeader(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, "PUT", "/old.txt", "admin", "adminpw", "bytes", nil)

	resp := do(t, ts, "MOVE", "/old.txt", "admin", "adminpw", "",
		map[string]string{"Destination": ts.URL + "/new.txt"})
	assert.Equal(t, 204, resp.StatusCode)

	resp = do(t, ts, "GET", "/new.txt", "admin", "adminpw", "", nil)
	assert.Equal(t, 200, resp.StatusCode)

	resp = do(t, ts, "GET", "/old.txt", "admin", "adminpw", "", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestMoveWithoutDestinationHeader(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, "MKCOL", "/archive", "admin", "adminpw", "", nil)
	do(t, ts, "PUT", "/archive/report.txt", "admin", "adminpw", "bytes", nil)

	resp := do(t, ts, "MOVE", "/archive/report.txt", "admin", "adminpw", "", nil)
	assert.Equal(t, 400, resp.StatusCode)

	resp = do(t, ts, "COPY", "/archive/report.txt", "admin", "adminpw", "", nil)
	assert.Equal(t, 400, resp.StatusCode)

	// the document stays in place and nothing lands in the root
	resp = do(t, ts, "GET", "/archive/report.txt", "admin", "adminpw", "", nil)
	assert.Equal(t, 200, resp.StatusCode)

	resp = do(t, ts, "GET", "/report.txt", "admin", "adminpw", "", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestCopyToForeignHost(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, "PUT", "/a.txt", "admin", "adminpw", "bytes", nil)

	resp := do(t, ts, "COPY", "/a.txt", "admin", "adminpw", "",
		map[string]string{"Destination": "http://elsewhere.example/a.txt"})
	assert.Equal(t, 502, resp.StatusCode)
}

func TestLockedDocumentAnswers423(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, "PUT", "/report.txt", "admin", "adminpw", "bytes", nil)

	resp := do(t, ts, "LOCK", "/report.txt", "admin", "adminpw", "", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Lock-Token"), "opaquelocktoken:")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<D:lockdiscovery>")

	resp = do(t, ts, "PUT", "/report.txt", "joe", "joepw", "other", nil)
	assert.Equal(t, 423, resp.StatusCode)

	resp = do(t, ts, "DELETE", "/report.txt", "joe", "joepw", "", nil)
	assert.Equal(t, 423, resp.StatusCode)

	resp = do(t, ts, "UNLOCK", "/report.txt", "admin", "adminpw", "", nil)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestSessionCookieSkipsBasicAuth(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, "OPTIONS", "/", "admin", "adminpw", "", nil)
	require.Equal(t, 200, resp.StatusCode)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	req, err := http.NewRequest("OPTIONS", ts.URL+"/", nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	again, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer again.Body.Close()
	assert.Equal(t, 200, again.StatusCode)
}

func TestLitmusEcho(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, "OPTIONS", "/", "admin", "adminpw", "", map[string]string{"X-Litmus": "basic: 1"})
	assert.Equal(t, "basic: 1", resp.Header.Get("X-Litmus"))
}

func TestPropPatchOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	do(t, ts, "PUT", "/report.txt", "admin", "adminpw", "bytes", nil)

	body := `<?xml version="1.0"?>
<D:propertyupdate xmlns:D="DAV:" xmlns:S="DMS:">
 <D:set><D:prop><S:comment>looks good</S:comment></D:prop></D:set>
</D:propertyupdate>`

	resp := do(t, ts, "PROPPATCH", "/report.txt", "admin", "adminpw", body, nil)
	assert.Equal(t, 207, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "200 OK")

	resp = do(t, ts, "PROPFIND", "/report.txt", "admin", "adminpw", "", map[string]string{"Depth": "0"})
	raw, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "<S:comment>looks good</S:comment>")
}
