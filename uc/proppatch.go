package uc

import (
	"strconv"
	"time"

	"github.com/fbrnila/go-dms-dav/constant"
	"github.com/fbrnila/go-dms-dav/domain"
)

// PropPatch is one property mutation from a PROPPATCH body.
type PropPatch struct {
	NS     string
	Name   string
	Value  string
	Remove bool
}

// PropStatus is the per-property outcome reported in the multistatus
// answer.
type PropStatus struct {
	Prop   PropPatch
	Status int
	Detail string
}

// vendor fields that mirror repository state and cannot be written
var readOnlyVendorProps = map[string]bool{
	"id":             true,
	"version":        true,
	"status":         true,
	"status-comment": true,
	"status-date":    true,
}

// PropPatch mutates the comment, expiry or a custom attribute of a
// node. Standard-namespace and read-only vendor fields are refused.
func (s Interactor) PropPatch(c *Caller, path string, props []PropPatch) ([]PropStatus, *Response) {
	s.logger.Info("PROPPATCH:", path)

	obj, err := s.lookupRetry(path)
	if err != nil {
		return nil, Respond(404)
	}

	if s.repo.AccessMode(obj, c.User) < domain.AccessReadWrite {
		return nil, Respond(403)
	}

	results := make([]PropStatus, 0, len(props))
	for _, prop := range props {
		results = append(results, s.patchProp(obj, prop))
	}
	return results, Respond(207)
}

func (s Interactor) patchProp(obj domain.Node, prop PropPatch) PropStatus {
	res := PropStatus{Prop: prop, Status: 200}

	if prop.NS == constant.DAVNS {
		res.Status = 403
		return res
	}
	if prop.NS != constant.VendorNS {
		// foreign dead properties are not stored
		return res
	}
	if readOnlyVendorProps[prop.Name] {
		res.Status = 403
		return res
	}

	val := prop.Value
	if prop.Remove {
		val = ""
	}

	switch prop.Name {
	case "comment":
		if err := s.repo.SetComment(obj, val); err != nil {
			res.Status = 409
			res.Detail = err.Error()
		}
	case "expires":
		doc, ok := obj.(*domain.Document)
		if !ok {
			res.Status = 405
			res.Detail = "expiration date cannot be set on folders"
			return res
		}
		if val == "" {
			if err := s.repo.SetExpires(doc, time.Time{}); err != nil {
				res.Status = 409
			}
			return res
		}
		ts, err := parseDate(val)
		if err != nil {
			res.Status = 400
			res.Detail = "could not parse date"
			return res
		}
		if err := s.repo.SetExpires(doc, ts); err != nil {
			res.Status = 409
		}
	default:
		def := s.repo.AttributeDefinitionByName(prop.Name)
		if def == nil {
			return res
		}
		value, err := coerceAttrValue(def.Type, val)
		if err != nil {
			res.Status = 400
			res.Detail = err.Error()
			return res
		}
		if value == nil {
			// unsupported attribute type over PROPPATCH, ignored
			return res
		}
		if err := s.repo.SetAttribute(obj, def, value); err != nil {
			res.Status = 409
			res.Detail = err.Error()
		}
	}
	return res
}

func coerceAttrValue(t domain.AttributeType, val string) (interface{}, error) {
	switch t {
	case domain.AttributeString:
		return val, nil
	case domain.AttributeInt:
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		return n, nil
	case domain.AttributeFloat:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case domain.AttributeBoolean:
		return val == "1", nil
	}
	return nil, nil
}

// parseDate accepts the formats WebDAV clients are known to send.
func parseDate(val string) (time.Time, error) {
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		var ts time.Time
		if ts, err = time.Parse(layout, val); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}
