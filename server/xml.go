package server

import (
	"encoding/xml"
	"io"
	"net/url"
	"strings"

	"github.com/fbrnila/go-dms-dav/constant"
	"github.com/fbrnila/go-dms-dav/uc"
)

// propfindBody is the parsed PROPFIND request body. An empty body is
// treated as allprop, per the protocol.
type propfindBody struct {
	XMLName  xml.Name  `xml:"propfind"`
	Allprop  *struct{} `xml:"allprop"`
	Propname *struct{} `xml:"propname"`
	Prop     *propList `xml:"prop"`
}

type propList struct {
	Props []anyProp `xml:",any"`
}

type anyProp struct {
	XMLName xml.Name
}

func parsePropfind(body io.Reader) (nameOnly bool, requested []xml.Name, err error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return false, nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return false, nil, nil
	}

	var pf propfindBody
	if err := xml.Unmarshal(raw, &pf); err != nil {
		return false, nil, err
	}
	if pf.Propname != nil {
		return true, nil, nil
	}
	if pf.Prop != nil {
		for _, p := range pf.Prop.Props {
			requested = append(requested, p.XMLName)
		}
	}
	return false, requested, nil
}

// propertyupdate is the parsed PROPPATCH request body.
type propertyupdate struct {
	XMLName xml.Name     `xml:"propertyupdate"`
	Set     []propAction `xml:"set"`
	Remove  []propAction `xml:"remove"`
}

type propAction struct {
	Prop propValues `xml:"prop"`
}

type propValues struct {
	Values []propValue `xml:",any"`
}

type propValue struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func parsePropPatch(body io.Reader) ([]uc.PropPatch, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	var pu propertyupdate
	if err := xml.Unmarshal(raw, &pu); err != nil {
		return nil, err
	}

	var props []uc.PropPatch
	for _, action := range pu.Set {
		for _, v := range action.Prop.Values {
			props = append(props, uc.PropPatch{
				NS:    v.XMLName.Space,
				Name:  v.XMLName.Local,
				Value: v.Value,
			})
		}
	}
	for _, action := range pu.Remove {
		for _, v := range action.Prop.Values {
			props = append(props, uc.PropPatch{
				NS:     v.XMLName.Space,
				Name:   v.XMLName.Local,
				Remove: true,
			})
		}
	}
	return props, nil
}

func xmlEscape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// href renders a node path as an escaped URL path, folders with a
// trailing slash.
func href(info uc.NodeInfo) string {
	p := info.Path
	if info.IsDir && p != "/" {
		p += "/"
	}
	u := url.URL{Path: p}
	return u.EscapedPath()
}

// renderMultistatus renders the PROPFIND answer. When specific
// properties were requested, found and missing ones go into separate
// propstat blocks; a propname request emits names without values.
func renderMultistatus(infos []uc.NodeInfo, nameOnly bool, requested []xml.Name) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<D:multistatus xmlns:D="DAV:" xmlns:S="` + constant.VendorNS + `">` + "\n")

	for _, info := range infos {
		b.WriteString(" <D:response>\n")
		b.WriteString("  <D:href>" + xmlEscape(href(info)) + "</D:href>\n")

		if len(requested) == 0 {
			writePropstat(&b, info.Props, "HTTP/1.1 200 OK", nameOnly)
		} else {
			found, missing := selectProps(info.Props, requested)
			if len(found) > 0 {
				writePropstat(&b, found, "HTTP/1.1 200 OK", false)
			}
			if len(missing) > 0 {
				writePropstat(&b, missing, "HTTP/1.1 404 Not Found", true)
			}
		}

		b.WriteString(" </D:response>\n")
	}

	b.WriteString("</D:multistatus>\n")
	return b.String()
}

func writePropstat(b *strings.Builder, props []uc.Prop, status string, nameOnly bool) {
	b.WriteString("  <D:propstat>\n   <D:prop>\n")
	for _, p := range props {
		writeProp(b, p, nameOnly)
	}
	b.WriteString("   </D:prop>\n")
	b.WriteString("   <D:status>" + status + "</D:status>\n")
	b.WriteString("  </D:propstat>\n")
}

func writeProp(b *strings.Builder, p uc.Prop, nameOnly bool) {
	tag := propTag(p)
	if p.NS == constant.DAVNS && p.Name == "resourcetype" && !nameOnly {
		if p.Value == "collection" {
			b.WriteString("    <" + tag + "><D:collection/></" + tag + ">\n")
		} else {
			b.WriteString("    <" + tag + "/>\n")
		}
		return
	}
	if nameOnly || p.Value == "" {
		b.WriteString("    <" + tag + "/>\n")
		return
	}
	b.WriteString("    <" + tag + ">" + xmlEscape(p.Value) + "</" + tag + ">\n")
}

func propTag(p uc.Prop) string {
	switch p.NS {
	case constant.DAVNS:
		return "D:" + p.Name
	case constant.VendorNS:
		return "S:" + p.Name
	default:
		return p.Name
	}
}

// selectProps splits a node's property set by a requested-name list.
// Missing ones are echoed back as empty properties under a 404 block.
func selectProps(props []uc.Prop, requested []xml.Name) (found, missing []uc.Prop) {
	for _, want := range requested {
		hit := false
		for _, p := range props {
			if p.Name == want.Local && (want.Space == "" || want.Space == p.NS) {
				found = append(found, p)
				hit = true
				break
			}
		}
		if !hit {
			ns := want.Space
			if ns != constant.DAVNS && ns != constant.VendorNS {
				ns = ""
			}
			missing = append(missing, uc.Prop{NS: ns, Name: want.Local})
		}
	}
	return found, missing
}

// renderPropPatchStatus renders the PROPPATCH multistatus: one
// propstat per property outcome.
func renderPropPatchStatus(path string, results []uc.PropStatus) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<D:multistatus xmlns:D="DAV:" xmlns:S="` + constant.VendorNS + `">` + "\n")
	b.WriteString(" <D:response>\n")
	u := url.URL{Path: path}
	b.WriteString("  <D:href>" + xmlEscape(u.EscapedPath()) + "</D:href>\n")

	for _, res := range results {
		b.WriteString("  <D:propstat>\n   <D:prop>\n")
		writeProp(&b, uc.Prop{NS: res.Prop.NS, Name: res.Prop.Name}, true)
		b.WriteString("   </D:prop>\n")
		status := uc.Respond(res.Status, res.Detail)
		b.WriteString("   <D:status>HTTP/1.1 " + status.StatusLine() + "</D:status>\n")
		b.WriteString("  </D:propstat>\n")
	}

	b.WriteString(" </D:response>\n</D:multistatus>\n")
	return b.String()
}

// renderLockDiscovery renders the prop/lockdiscovery answer of a
// granted LOCK.
func renderLockDiscovery(lock *uc.LockResult) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<D:prop xmlns:D="DAV:">` + "\n")
	b.WriteString(" <D:lockdiscovery>\n  <D:activelock>\n")
	b.WriteString("   <D:locktype><D:" + lock.Type + "/></D:locktype>\n")
	b.WriteString("   <D:lockscope><D:" + lock.Scope + "/></D:lockscope>\n")
	b.WriteString("   <D:depth>0</D:depth>\n")
	b.WriteString("   <D:owner>" + xmlEscape(lock.Owner) + "</D:owner>\n")
	b.WriteString("   <D:timeout>Infinite</D:timeout>\n")
	b.WriteString("   <D:locktoken><D:href>" + xmlEscape(lock.Token) + "</D:href></D:locktoken>\n")
	b.WriteString("  </D:activelock>\n </D:lockdiscovery>\n")
	b.WriteString("</D:prop>\n")
	return b.String()
}
