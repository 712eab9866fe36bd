package uc

import (
	"strconv"
	"strings"
	"time"

	"github.com/fbrnila/go-dms-dav/constant"
	"github.com/fbrnila/go-dms-dav/domain"
)

// Prop is one WebDAV property of a node.
type Prop struct {
	NS    string
	Name  string
	Value string
}

// NodeInfo is the presented form of a node: its canonical display path
// plus the property set.
type NodeInfo struct {
	Path  string
	IsDir bool
	Props []Prop
}

func (i *NodeInfo) add(ns, name, value string) {
	i.Props = append(i.Props, Prop{NS: ns, Name: name, Value: value})
}

// fileinfo renders a resolved node as WebDAV properties. Document
// display names come from the configured naming strategy, the same one
// the path resolver uses, so presented paths resolve back.
func (s Interactor) fileinfo(c *Caller, obj domain.Node) NodeInfo {
	info := NodeInfo{}

	switch n := obj.(type) {
	case *domain.Folder:
		info.IsDir = true
		// folders carry a single structural-change time
		info.add(constant.DAVNS, "getlastmodified", n.Date.UTC().Format(time.RFC1123))
		info.add(constant.DAVNS, "creationdate", n.Date.UTC().Format(time.RFC3339))

		info.Path = n.Path()
		if n.IsRoot() {
			info.add(constant.DAVNS, "isroot", "true")
		}
		info.add(constant.DAVNS, "displayname", n.Name)
		info.add(constant.DAVNS, "resourcetype", "collection")
		info.add(constant.DAVNS, "getcontenttype", constant.DirContentType)
		info.add(constant.DAVNS, "quota-used-bytes", strconv.FormatInt(c.DiskUsage, 10))
		if c.User.Quota > 0 {
			info.add(constant.DAVNS, "quota-available-bytes", strconv.FormatInt(c.User.Quota-c.DiskUsage, 10))
		}

	case *domain.Document:
		lc := n.LatestContent()
		info.add(constant.DAVNS, "getlastmodified", lc.Date.UTC().Format(time.RFC1123))
		info.add(constant.DAVNS, "creationdate", n.Date.UTC().Format(time.RFC3339))

		name := s.namer.Present(n)
		if n.Folder.IsRoot() {
			info.Path = "/" + name
		} else {
			info.Path = n.Folder.Path() + "/" + name
		}
		info.add(constant.DAVNS, "displayname", name)

		// empty resourcetype signals "not a collection"
		info.add(constant.DAVNS, "resourcetype", "")
		info.add(constant.DAVNS, "getcontenttype", lc.MimeType)
		info.add(constant.DAVNS, "getcontentlength", strconv.FormatInt(s.repo.ContentSize(lc), 10))

		if n.Keywords != "" {
			info.add(constant.VendorNS, "keywords", n.Keywords)
		}
		info.add(constant.VendorNS, "id", strconv.Itoa(n.ID))
		info.add(constant.VendorNS, "version", strconv.Itoa(lc.Version))
		if lc.Comment != "" {
			info.add(constant.VendorNS, "version-comment", lc.Comment)
		}
		info.add(constant.VendorNS, "status", strconv.Itoa(int(lc.Status)))
		info.add(constant.VendorNS, "status-comment", lc.StatusComment)
		info.add(constant.VendorNS, "status-date", lc.StatusDate.UTC().Format(time.RFC3339))
		if !n.Expires.IsZero() {
			info.add(constant.VendorNS, "expires", n.Expires.UTC().Format(time.RFC3339))
		}
	}

	if comment := obj.NodeComment(); comment != "" {
		info.add(constant.VendorNS, "comment", comment)
	}
	// the root folder is owned by nobody
	if owner := obj.NodeOwner(); owner != nil {
		info.add(constant.VendorNS, "owner", owner.Login)
	}

	for _, attr := range nodeAttributes(obj) {
		name, value := presentAttribute(attr)
		if value != "" && value != "0" {
			info.add(constant.VendorNS, name, value)
		}
	}

	return info
}

func nodeAttributes(obj domain.Node) []domain.Attribute {
	switch n := obj.(type) {
	case *domain.Folder:
		return n.Attributes
	case *domain.Document:
		return n.Attributes
	}
	return nil
}

// presentAttribute renders one attribute value for the wire. The
// property name is the definition name with everything outside an
// extended alphanumeric set stripped. Multi-valued attributes are
// joined with the first character of the definition's value set, which
// doubles as the leading marker.
func presentAttribute(attr domain.Attribute) (string, string) {
	def := attr.Def
	name := "attr_" + stripAttrName(def.Name)

	if def.MultipleValues {
		values, ok := attr.Value.([]interface{})
		if !ok {
			return name, ""
		}
		delim := ""
		if def.ValueSet != "" {
			delim = string(def.ValueSet[0])
		}
		parts := make([]string, 0, len(values))
		for _, v := range values {
			parts = append(parts, domain.ScalarString(def.Type, v))
		}
		return name, delim + strings.Join(parts, delim)
	}
	return name, domain.ScalarString(def.Type, attr.Value)
}

func stripAttrName(name string) string {
	keep := func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return true
		case r == '_' || r == '-':
			return true
		}
		switch r {
		case 'Ä', 'ä', 'Ü', 'ü', 'Ö', 'ö', 'ß':
			return true
		}
		return false
	}
	var b strings.Builder
	for _, r := range name {
		if keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
