package hugo

import (
	"bytes"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/apidocgen/internal/frontmatter"
	"git.home.luguber.info/inful/apidocgen/internal/linker"
	"git.home.luguber.info/inful/apidocgen/internal/markdown"
	"git.home.luguber.info/inful/apidocgen/internal/metadata"
)

// resolveRef resolves one identifier into markdown, counting silent
// degradations.
func (bs *BuildState) resolveRef(identifier string) (string, error) {
	res, err := bs.Links.Resolve(identifier)
	if err != nil {
		return "", err
	}
	if res.Kind == linker.KindUnresolved {
		bs.Recorder.IncUnresolvedReference()
	}
	return res.Markdown, nil
}

// resolveInline rewrites embedded xref markup in free-form text.
func (bs *BuildState) resolveInline(text string) (string, error) {
	return markdown.RewriteXrefs(text, bs.resolveRef)
}

// renderPage produces the full document for one page.
func renderPage(bs *BuildState, p page) ([]byte, error) {
	if p.item == nil {
		return renderRootIndex(bs)
	}
	return renderItemPage(bs, p.item)
}

func renderRootIndex(bs *BuildState) ([]byte, error) {
	var body bytes.Buffer
	body.WriteString("\n")
	for _, it := range bs.Store.Items() {
		if it.Type != metadata.TypeNamespace || it.DoNotDocument {
			continue
		}
		ref, err := bs.resolveRef(it.UID)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&body, "- %s\n", ref)
	}

	return frontmatter.Wrap(map[string]any{
		"title": "API Reference",
		"kind":  "index",
	}, body.Bytes())
}

func renderItemPage(bs *BuildState, it *metadata.Item) ([]byte, error) {
	fields := map[string]any{
		"title": it.Name,
		"uid":   it.UID,
		"kind":  strings.ToLower(string(it.Type)),
	}
	if it.Source != nil && it.Source.Path != "" {
		fields["source_path"] = it.Source.Path
		if it.Source.StartLine > 0 {
			fields["source_line"] = it.Source.StartLine
		}
	}

	var body bytes.Buffer
	body.WriteString("\n")

	if msg, ok := it.Deprecated(); ok {
		if msg == "" {
			msg = "This API is obsolete."
		}
		fmt.Fprintf(&body, "> **Deprecated:** %s\n\n", msg)
	}

	if err := writeText(bs, &body, "", it.Summary); err != nil {
		return nil, err
	}
	if err := writeSyntax(bs, &body, it.Syntax); err != nil {
		return nil, err
	}
	if err := writeExceptions(bs, &body, it.Exceptions); err != nil {
		return nil, err
	}
	if err := writeChildren(bs, &body, it); err != nil {
		return nil, err
	}
	if err := writeText(bs, &body, "Remarks", it.Remarks); err != nil {
		return nil, err
	}
	if err := writeText(bs, &body, "Example", it.Example); err != nil {
		return nil, err
	}

	return frontmatter.Wrap(fields, body.Bytes())
}

func writeText(bs *BuildState, body *bytes.Buffer, heading, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	resolved, err := bs.resolveInline(text)
	if err != nil {
		return err
	}
	if heading != "" {
		fmt.Fprintf(body, "## %s\n\n", heading)
	}
	body.WriteString(strings.TrimRight(resolved, "\n"))
	body.WriteString("\n\n")
	return nil
}

func writeSyntax(bs *BuildState, body *bytes.Buffer, syn *metadata.Syntax) error {
	if syn == nil {
		return nil
	}

	if strings.TrimSpace(syn.Content) != "" {
		body.WriteString("## Syntax\n\n```csharp\n")
		body.WriteString(strings.TrimRight(syn.Content, "\n"))
		body.WriteString("\n```\n\n")
	}

	if len(syn.Parameters) > 0 {
		body.WriteString("### Parameters\n\n")
		for _, param := range syn.Parameters {
			typeRef, err := bs.resolveRef(param.Type)
			if err != nil {
				return err
			}
			fmt.Fprintf(body, "- `%s` %s", param.ID, typeRef)
			if param.Description != "" {
				desc, err := bs.resolveInline(param.Description)
				if err != nil {
					return err
				}
				fmt.Fprintf(body, " — %s", desc)
			}
			body.WriteString("\n")
		}
		body.WriteString("\n")
	}

	if len(syn.TypeParameters) > 0 {
		body.WriteString("### Type Parameters\n\n")
		for _, tp := range syn.TypeParameters {
			fmt.Fprintf(body, "- `%s`", tp.ID)
			if tp.Description != "" {
				fmt.Fprintf(body, " — %s", tp.Description)
			}
			body.WriteString("\n")
		}
		body.WriteString("\n")
	}

	if syn.Return != nil && syn.Return.Type != "" {
		typeRef, err := bs.resolveRef(syn.Return.Type)
		if err != nil {
			return err
		}
		body.WriteString("### Returns\n\n")
		fmt.Fprintf(body, "%s", typeRef)
		if syn.Return.Description != "" {
			desc, err := bs.resolveInline(syn.Return.Description)
			if err != nil {
				return err
			}
			fmt.Fprintf(body, " — %s", desc)
		}
		body.WriteString("\n\n")
	}
	return nil
}

func writeExceptions(bs *BuildState, body *bytes.Buffer, exceptions []metadata.Exception) error {
	if len(exceptions) == 0 {
		return nil
	}
	body.WriteString("## Exceptions\n\n")
	for _, exc := range exceptions {
		typeRef, err := bs.resolveRef(exc.Type)
		if err != nil {
			return err
		}
		fmt.Fprintf(body, "- %s", typeRef)
		if exc.Description != "" {
			desc, err := bs.resolveInline(exc.Description)
			if err != nil {
				return err
			}
			fmt.Fprintf(body, " — %s", desc)
		}
		body.WriteString("\n")
	}
	body.WriteString("\n")
	return nil
}

// writeChildren lists owned members and inherited members separately.
// Children of suppressed items still appear in the metadata; suppression
// only stops their own page, not their mention.
func writeChildren(bs *BuildState, body *bytes.Buffer, it *metadata.Item) error {
	if len(it.Children) == 0 {
		return nil
	}

	inherited := make(map[string]bool, len(it.InheritedMembers))
	for _, uid := range it.InheritedMembers {
		inherited[uid] = true
	}

	heading := "Members"
	if it.Type == metadata.TypeNamespace {
		heading = "Types"
	}

	wroteHeading := false
	for _, childUID := range it.Children {
		if inherited[childUID] {
			continue
		}
		if !wroteHeading {
			fmt.Fprintf(body, "## %s\n\n", heading)
			wroteHeading = true
		}
		ref, err := bs.resolveRef(childUID)
		if err != nil {
			return err
		}
		fmt.Fprintf(body, "- %s\n", ref)
	}
	if wroteHeading {
		body.WriteString("\n")
	}

	if len(it.InheritedMembers) > 0 {
		body.WriteString("## Inherited Members\n\n")
		for _, uid := range it.InheritedMembers {
			ref, err := bs.resolveRef(uid)
			if err != nil {
				return err
			}
			fmt.Fprintf(body, "- %s\n", ref)
		}
		body.WriteString("\n")
	}
	return nil
}
