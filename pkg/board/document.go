// Package board holds the in-memory Wekan board document the importer merges
// into. The raw JSON export is kept alongside typed views of the collections
// the importer reads, so everything it does not touch is written back exactly
// as it was read.
package board

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/agentstation/wekanimport/pkg/errors"
)

// Top-level keys of a Wekan board export.
const (
	KeyID           = "_id"
	KeyTitle        = "title"
	KeyLists        = "lists"
	KeySwimlanes    = "swimlanes"
	KeyUsers        = "users"
	KeyLabels       = "labels"
	KeyCustomFields = "customFields"
	KeyCards        = "cards"
)

// Document is a parsed board export. The typed slices are views in document
// order; mutate the document only through the Append methods so the views and
// the raw tree stay in step.
type Document struct {
	ID           string
	Title        string
	Lists        []List
	Swimlanes    []Swimlane
	Users        []User
	Labels       []Label
	CustomFields []CustomField
	Cards        []Card

	raw []byte
	ids map[string]struct{}
}

// Decode reads a board export from r.
func Decode(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "board document", err)
	}
	return Parse(raw)
}

// Parse builds a Document from raw JSON. The slice is copied.
func Parse(raw []byte) (*Document, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.NewParseError("json", "", "board document is not valid JSON", nil)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, errors.NewParseError("json", "", "board document must be a JSON object", nil)
	}

	doc := &Document{
		ID:    entityID(root),
		Title: root.Get(KeyTitle).String(),
		raw:   append([]byte(nil), raw...),
		ids:   make(map[string]struct{}),
	}
	doc.track(doc.ID)

	root.Get(KeyLists).ForEach(func(_, v gjson.Result) bool {
		doc.Lists = append(doc.Lists, List{
			ID:       entityID(v),
			Title:    v.Get("title").String(),
			Archived: v.Get("archived").Bool(),
		})
		return true
	})
	root.Get(KeySwimlanes).ForEach(func(_, v gjson.Result) bool {
		doc.Swimlanes = append(doc.Swimlanes, Swimlane{
			ID:       entityID(v),
			Title:    v.Get("title").String(),
			Archived: v.Get("archived").Bool(),
			Type:     v.Get("type").String(),
		})
		return true
	})
	root.Get(KeyUsers).ForEach(func(_, v gjson.Result) bool {
		doc.Users = append(doc.Users, User{
			ID:       entityID(v),
			Username: v.Get("username").String(),
			Profile:  Profile{Fullname: v.Get("profile.fullname").String()},
		})
		return true
	})
	root.Get(KeyLabels).ForEach(func(_, v gjson.Result) bool {
		doc.Labels = append(doc.Labels, Label{
			ID:    entityID(v),
			Name:  v.Get("name").String(),
			Color: v.Get("color").String(),
		})
		return true
	})
	root.Get(KeyCustomFields).ForEach(func(_, v gjson.Result) bool {
		doc.CustomFields = append(doc.CustomFields, CustomField{
			ID:   entityID(v),
			Name: v.Get("name").String(),
			Type: v.Get("type").String(),
		})
		return true
	})
	// Existing cards are only read for their identity and placement.
	root.Get(KeyCards).ForEach(func(_, v gjson.Result) bool {
		doc.Cards = append(doc.Cards, Card{
			ID:          entityID(v),
			Title:       v.Get("title").String(),
			Description: v.Get("description").String(),
			ListID:      v.Get("listId").String(),
			SwimlaneID:  v.Get("swimlaneId").String(),
			Archived:    v.Get("archived").Bool(),
		})
		return true
	})

	for _, l := range doc.Lists {
		doc.track(l.ID)
	}
	for _, s := range doc.Swimlanes {
		doc.track(s.ID)
	}
	for _, u := range doc.Users {
		doc.track(u.ID)
	}
	for _, l := range doc.Labels {
		doc.track(l.ID)
	}
	for _, c := range doc.CustomFields {
		doc.track(c.ID)
	}
	for _, c := range doc.Cards {
		doc.track(c.ID)
	}

	return doc, nil
}

// AppendSwimlane adds s to the swimlanes collection.
func (d *Document) AppendSwimlane(s Swimlane) error {
	if err := d.appendRaw(KeySwimlanes, s.ID, s); err != nil {
		return errors.WrapResource("append", "swimlane", s.ID, err)
	}
	d.Swimlanes = append(d.Swimlanes, s)
	return nil
}

// AppendCard adds c to the cards collection.
func (d *Document) AppendCard(c Card) error {
	if err := d.appendRaw(KeyCards, c.ID, c); err != nil {
		return errors.WrapResource("append", "card", c.ID, err)
	}
	d.Cards = append(d.Cards, c)
	return nil
}

// HasID reports whether id is already used by the board or any entity in it.
func (d *Document) HasID(id string) bool {
	_, ok := d.ids[id]
	return ok
}

// Raw returns a copy of the current JSON tree.
func (d *Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Collection returns the raw JSON of one top-level key, or "" when absent.
func (d *Document) Collection(key string) string {
	return gjson.GetBytes(d.raw, key).Raw
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	indent string
}

// WithIndent pretty prints the document using indent for each level.
func WithIndent(indent string) EncodeOption {
	return func(o *encodeOptions) {
		o.indent = indent
	}
}

// Encode writes the document to w. Strings are written as UTF-8 without
// escaping non-ASCII characters.
func (d *Document) Encode(w io.Writer, opts ...EncodeOption) error {
	o := &encodeOptions{}
	for _, opt := range opts {
		opt(o)
	}

	out := d.raw
	if o.indent != "" {
		out = pretty.PrettyOptions(d.raw, &pretty.Options{
			Width:  80,
			Indent: o.indent,
		})
	}
	if _, err := w.Write(out); err != nil {
		return errors.WrapIO("write", "board document", err)
	}
	return nil
}

func (d *Document) appendRaw(key, id string, v any) error {
	if id == "" {
		return errors.NewValidationError("_id", id, "cannot be empty")
	}
	if d.HasID(id) {
		return errors.NewValidationError("_id", id, "already used in board document")
	}

	value, err := marshal(v)
	if err != nil {
		return err
	}
	raw, err := sjson.SetRawBytes(d.raw, key+".-1", value)
	if err != nil {
		return err
	}
	d.raw = raw
	d.track(id)
	return nil
}

// entityID reads an entity's identifier. Wekan exports use "_id"; hand
// written documents sometimes use "id".
func entityID(v gjson.Result) string {
	if id := v.Get(KeyID); id.Exists() {
		return id.String()
	}
	return v.Get("id").String()
}

func (d *Document) track(id string) {
	if id != "" {
		d.ids[id] = struct{}{}
	}
}

// marshal encodes v without HTML escaping and without the trailing newline.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
