package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scopezero/scopezero/internal/tabular"
)

// Resolver identifies which header supplies each Field.
//
// Synonym sets are disjoint across fields; NewResolver enforces this, so a
// header can match at most one field.
type Resolver struct {
	synonyms [numFields][]string
	sets     [numFields]map[string]struct{}
}

// NewResolver builds a Resolver from the default synonym lists. Each entry of
// overrides, keyed by field name (see ParseField), replaces that field's list.
// It fails with ErrUnknownField for an unknown key and ErrAmbiguousSynonym when
// two fields would share a synonym.
func NewResolver(overrides map[string][]string) (*Resolver, error) {
	r := &Resolver{}
	for i := range numFields {
		r.synonyms[i] = defaultSynonyms[i]
	}

	for name, list := range overrides {
		f, err := ParseField(name)
		if err != nil {
			return nil, err
		}
		r.synonyms[f] = list
	}

	owner := make(map[string]Field)
	for i := range numFields {
		clean := make([]string, 0, len(r.synonyms[i]))
		set := make(map[string]struct{}, len(r.synonyms[i]))
		for _, s := range r.synonyms[i] {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				continue
			}
			if prev, ok := owner[s]; ok && prev != i {
				return nil, fmt.Errorf("%w: %q is listed for %s and %s", ErrAmbiguousSynonym, s, prev, i)
			}
			if _, dup := set[s]; dup {
				continue
			}
			owner[s] = i
			set[s] = struct{}{}
			clean = append(clean, s)
		}
		r.synonyms[i] = clean
		r.sets[i] = set
	}
	return r, nil
}

// DefaultResolver returns a Resolver over the built-in synonym lists.
func DefaultResolver() *Resolver {
	r, err := NewResolver(nil)
	if err != nil {
		panic(fmt.Sprintf("built-in synonym lists are invalid: %v", err))
	}
	return r
}

// Synonyms returns the lower-cased synonym list for f.
func (r *Resolver) Synonyms(f Field) []string {
	if !f.valid() {
		return nil
	}
	return append([]string(nil), r.synonyms[f]...)
}

// Resolve picks, for each field, the first header whose trimmed lower-cased form
// is one of the field's synonyms. Unmatched fields are left unresolved.
func (r *Resolver) Resolve(headers []string) Mapping {
	var m Mapping
	for i := range numFields {
		for _, h := range headers {
			if _, ok := r.sets[i][strings.ToLower(strings.TrimSpace(h))]; ok {
				m.headers[i] = h
				m.found[i] = true
				break
			}
		}
	}
	return m
}

// Mapping is the result of resolving a header row.
type Mapping struct {
	headers [numFields]string
	found   [numFields]bool
}

// Header returns the header resolved for f.
func (m Mapping) Header(f Field) (string, bool) {
	if !f.valid() {
		return "", false
	}
	return m.headers[f], m.found[f]
}

// Lookup reads field f from row: the resolved header when there is one,
// otherwise the field's canonical header. Blank cells count as absent. The
// returned value is trimmed.
func (m Mapping) Lookup(row tabular.Row, f Field) (string, bool) {
	if !f.valid() {
		return "", false
	}
	key := f.CanonicalHeader()
	if m.found[f] {
		key = m.headers[f]
	}
	v := strings.TrimSpace(row[key])
	return v, v != ""
}

// MarshalJSON encodes the mapping as field name to header, null when unresolved.
func (m Mapping) MarshalJSON() ([]byte, error) {
	out := make(map[string]*string, numFields)
	for _, f := range Fields() {
		if h, ok := m.Header(f); ok {
			out[f.String()] = &h
		} else {
			out[f.String()] = nil
		}
	}
	return json.Marshal(out)
}

// String lists every field with its resolved header in resolution order, e.g.
// "date=- supplier=Vendor ...". Unresolved fields show "-".
func (m Mapping) String() string {
	parts := make([]string, 0, numFields)
	for _, f := range Fields() {
		h, ok := m.Header(f)
		if !ok {
			h = "-"
		}
		parts = append(parts, f.String()+"="+h)
	}
	return strings.Join(parts, " ")
}
