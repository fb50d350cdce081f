// Package frontmatter splits and serializes YAML frontmatter (`---` delimited).
//
// Generated output always uses "\n"; Split tolerates "\r\n" input because
// overwrite documents are externally authored.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingOpeningDelimiter indicates the document does not start with a
// YAML frontmatter delimiter.
var ErrMissingOpeningDelimiter = errors.New("document does not start with a yaml frontmatter delimiter")

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter from the body.
//
// Unlike permissive markdown tooling, Split is strict: a document without an
// opening delimiter, or with an unterminated header, is an error. Overwrite
// documents are header-first by definition, so a missing header means a
// malformed input rather than "no frontmatter".
func Split(content []byte) (header []byte, body []byte, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, nil, ErrMissingOpeningDelimiter
	}

	headerStart := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[headerStart:], closeLine) {
		bodyStart := headerStart + len(closeLine)
		return []byte{}, content[bodyStart:], nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[headerStart:], closeSeq)
	if idx < 0 {
		// Allow a closing delimiter at end of input without trailing newline.
		tail := []byte(nl + "---")
		if bytes.HasSuffix(content, tail) {
			return content[headerStart : len(content)-len(tail)+len(nl)], []byte{}, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}

	headerEnd := headerStart + idx + len(nl)
	bodyStart := headerStart + idx + len(closeSeq)
	return content[headerStart:headerEnd], content[bodyStart:], nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(header []byte) (map[string]any, error) {
	if len(header) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
