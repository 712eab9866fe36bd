package server

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbrnila/go-dms-dav/constant"
	"github.com/fbrnila/go-dms-dav/uc"
)

func TestParsePropfindEmptyBody(t *testing.T) {
	nameOnly, requested, err := parsePropfind(strings.NewReader(""))
	require.NoError(t, err)
	assert.False(t, nameOnly)
	assert.Empty(t, requested)
}

func TestParsePropfindAllprop(t *testing.T) {
	body := `<?xml version="1.0"?><D:propfind xmlns:D="DAV:"><D:allprop/></D:propfind>`
	nameOnly, requested, err := parsePropfind(strings.NewReader(body))
	require.NoError(t, err)
	assert.False(t, nameOnly)
	assert.Empty(t, requested)
}

func TestParsePropfindPropname(t *testing.T) {
	body := `<?xml version="1.0"?><D:propfind xmlns:D="DAV:"><D:propname/></D:propfind>`
	nameOnly, _, err := parsePropfind(strings.NewReader(body))
	require.NoError(t, err)
	assert.True(t, nameOnly)
}

func TestParsePropfindNamedProps(t *testing.T) {
	body := `<?xml version="1.0"?>
<D:propfind xmlns:D="DAV:" xmlns:S="DMS:">
 <D:prop><D:displayname/><S:comment/></D:prop>
</D:propfind>`
	_, requested, err := parsePropfind(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, requested, 2)
	assert.Equal(t, "displayname", requested[0].Local)
	assert.Equal(t, "DAV:", requested[0].Space)
	assert.Equal(t, "comment", requested[1].Local)
	assert.Equal(t, "DMS:", requested[1].Space)
}

func TestParsePropfindMalformed(t *testing.T) {
	_, _, err := parsePropfind(strings.NewReader("<not-xml"))
	assert.Error(t, err)
}

func TestParsePropPatch(t *testing.T) {
	body := `<?xml version="1.0"?>
<D:propertyupdate xmlns:D="DAV:" xmlns:S="DMS:">
 <D:set><D:prop><S:comment>hello</S:comment></D:prop></D:set>
 <D:remove><D:prop><S:expires/></D:prop></D:remove>
</D:propertyupdate>`

	props, err := parsePropPatch(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, props, 2)

	assert.Equal(t, uc.PropPatch{NS: "DMS:", Name: "comment", Value: "hello"}, props[0])
	assert.Equal(t, uc.PropPatch{NS: "DMS:", Name: "expires", Remove: true}, props[1])
}

func TestRenderMultistatus(t *testing.T) {
	infos := []uc.NodeInfo{
		{Path: "/", IsDir: true, Props: []uc.Prop{
			{NS: constant.DAVNS, Name: "resourcetype", Value: "collection"},
			{NS: constant.DAVNS, Name: "displayname", Value: ""},
		}},
		{Path: "/a & b.txt", Props: []uc.Prop{
			{NS: constant.DAVNS, Name: "resourcetype", Value: ""},
			{NS: constant.VendorNS, Name: "comment", Value: "x < y"},
		}},
	}

	out := renderMultistatus(infos, false, nil)
	assert.Contains(t, out, "<D:href>/</D:href>")
	assert.Contains(t, out, "<D:href>/a%20&amp;%20b.txt</D:href>")
	assert.Contains(t, out, "<D:resourcetype><D:collection/></D:resourcetype>")
	assert.Contains(t, out, "<D:resourcetype/>")
	assert.Contains(t, out, "<S:comment>x &lt; y</S:comment>")
	assert.Contains(t, out, "HTTP/1.1 200 OK")
}

func TestParseDepth(t *testing.T) {
	req := httptest.NewRequest("PROPFIND", "/", nil)
	assert.Equal(t, 1, parseDepth(req, 1))

	req.Header.Set("Depth", "0")
	assert.Equal(t, 0, parseDepth(req, 1))

	req.Header.Set("Depth", "infinity")
	assert.Equal(t, uc.DepthInfinity, parseDepth(req, 1))
}

func TestParseDestination(t *testing.T) {
	req := httptest.NewRequest("MOVE", "http://example.test/a.txt", nil)

	req.Header.Set("Destination", "http://example.test/b.txt")
	dest, destURL, err := parseDestination(req)
	require.NoError(t, err)
	assert.Equal(t, "/b.txt", dest)
	assert.Empty(t, destURL)

	req.Header.Set("Destination", "http://other.test/b.txt")
	dest, destURL, err = parseDestination(req)
	require.NoError(t, err)
	assert.Empty(t, dest)
	assert.Equal(t, "http://other.test/b.txt", destURL)

	req.Header.Set("Destination", "/relative.txt")
	dest, _, err = parseDestination(req)
	require.NoError(t, err)
	assert.Equal(t, "/relative.txt", dest)

	req.Header.Del("Destination")
	_, _, err = parseDestination(req)
	assert.Error(t, err)

	req.Header.Set("Destination", "http://example.test")
	_, _, err = parseDestination(req)
	assert.Error(t, err)
}

func TestHasBody(t *testing.T) {
	req := httptest.NewRequest("MKCOL", "/dir", nil)
	assert.False(t, hasBody(req))

	req = httptest.NewRequest("MKCOL", "/dir", strings.NewReader("garbage"))
	assert.True(t, hasBody(req))

	// chunked transfer encoding leaves ContentLength at -1
	req = httptest.NewRequest("MKCOL", "/dir", io.NopCloser(strings.NewReader("garbage")))
	req.ContentLength = -1
	assert.True(t, hasBody(req))
}

func TestParseOverwrite(t *testing.T) {
	req := httptest.NewRequest("MOVE", "/", nil)
	assert.True(t, parseOverwrite(req))

	req.Header.Set("Overwrite", "F")
	assert.False(t, parseOverwrite(req))

	req.Header.Set("Overwrite", "T")
	assert.True(t, parseOverwrite(req))
}
