// Package markdown rewrites embedded reference markup in documentation
// text. Metadata generators embed cross references as <xref:UID> (and the
// attribute form <xref href="UID">); the renderer replaces each with the
// formatted reference the linker produces.
package markdown

import (
	"net/url"
	"regexp"
)

var (
	xrefColon = regexp.MustCompile(`<xref:([^>]+)>`)
	xrefHref  = regexp.MustCompile(`<xref href="([^"]+)"[^>]*>(?:</xref>)?`)
)

// ResolveFunc formats one identifier into replacement markdown.
type ResolveFunc func(identifier string) (string, error)

// RewriteXrefs replaces every embedded reference marker in text. Identifier
// payloads may be URL-encoded (generic-arity backticks in particular);
// decoding is best effort, keeping the raw payload when it is not valid
// encoding.
func RewriteXrefs(text string, resolve ResolveFunc) (string, error) {
	var firstErr error

	apply := func(re *regexp.Regexp, input string) string {
		return re.ReplaceAllStringFunc(input, func(match string) string {
			groups := re.FindStringSubmatch(match)
			identifier := decode(groups[1])
			out, err := resolve(identifier)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return match
			}
			return out
		})
	}

	text = apply(xrefColon, text)
	text = apply(xrefHref, text)

	if firstErr != nil {
		return "", firstErr
	}
	return text, nil
}

func decode(payload string) string {
	if decoded, err := url.QueryUnescape(payload); err == nil {
		return decoded
	}
	return payload
}
