// Package overwrite supplants generated item fields with externally
// authored content.
//
// An overwrite document is a YAML header plus a free-form markdown body.
// The reserved placeholder value `*content` in a header field binds the
// body text to that field. Merging is strictly non-destructive: only the
// fields named in the merge table can change, only when the incoming value
// is non-blank, and never UID, Type, or Overload (the fields path and UID
// computation depend on).
package overwrite

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocgen/internal/frontmatter"
	"git.home.luguber.info/inful/apidocgen/internal/metadata"
)

// BodyPlaceholder is the reserved header value meaning "use the body text".
const BodyPlaceholder = "*content"

// Document is a parsed partial-item record.
type Document struct {
	UID     string
	Summary string
	Remarks string
	Example string
}

var placeholderLine = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*):\s*\` + BodyPlaceholder + `\s*$`)

// Parse reads an overwrite document. Malformed header delimiters or a
// premature end of input are fatal; so is a missing UID.
func Parse(data []byte) (*Document, error) {
	header, body, err := frontmatter.Split(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryOverwrite, "malformed overwrite header").
			WithSeverity(errors.SeverityFatal).Build()
	}

	// Placeholder lines are not valid YAML (an alias to an undefined
	// anchor), so they are lifted out before the header is parsed and
	// bound to the body afterward.
	kept := make([]string, 0)
	placeholderKeys := make([]string, 0)
	for line := range strings.Lines(string(header)) {
		if m := placeholderLine.FindStringSubmatch(strings.TrimRight(line, "\r\n")); m != nil {
			placeholderKeys = append(placeholderKeys, m[1])
			continue
		}
		kept = append(kept, line)
	}

	fields, err := frontmatter.ParseYAML([]byte(strings.Join(kept, "")))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryOverwrite, "malformed overwrite header").
			WithSeverity(errors.SeverityFatal).Build()
	}
	bodyText := strings.TrimSpace(string(body))
	for _, key := range placeholderKeys {
		fields[key] = bodyText
	}

	doc := &Document{
		UID:     stringField(fields, "uid"),
		Summary: stringField(fields, "summary"),
		Remarks: stringField(fields, "remarks"),
		Example: stringField(fields, "example"),
	}
	if doc.UID == "" {
		return nil, errors.ValidationError("overwrite document has no uid").Build()
	}
	return doc, nil
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// fieldMerge is one row of the merge table: which partial-record field
// replaces which item field. Rows run in fixed order; there is no runtime
// introspection and no deep merge of structured fields.
type fieldMerge struct {
	name  string
	from  func(*Document) string
	apply func(*metadata.Item, string)
}

var mergeTable = []fieldMerge{
	{"summary", func(d *Document) string { return d.Summary }, func(it *metadata.Item, v string) { it.Summary = v }},
	{"remarks", func(d *Document) string { return d.Remarks }, func(it *metadata.Item, v string) { it.Remarks = v }},
	{"example", func(d *Document) string { return d.Example }, func(it *metadata.Item, v string) { it.Example = v }},
}

// Merge applies a parsed overwrite document to the store. A UID with no
// matching item yields a warning-severity error: the caller logs it and
// continues, leaving the store unchanged.
func Merge(store *metadata.Store, doc *Document) error {
	it, ok := store.Item(doc.UID)
	if !ok {
		return errors.OverwriteError("overwrite uid not found in store").
			Warning().
			WithContext("uid", doc.UID).Build()
	}

	for _, row := range mergeTable {
		value := row.from(doc)
		if strings.TrimSpace(value) == "" {
			continue
		}
		row.apply(it, value)
	}
	return nil
}
