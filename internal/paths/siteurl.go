package paths

import "strings"

// SiteURL converts a resolved output path into the site-absolute URL Hugo
// serves it at: lowercased, index documents collapsing onto their section
// directory, trailing slash. Both the reference linker and the post-render
// link audit derive URLs through this one function so they cannot drift.
func SiteURL(basePath, path string) string {
	page := strings.TrimSuffix(path, "/_index")
	if page == "_index" { // root index
		page = ""
	}
	page = strings.ToLower(page)

	segments := make([]string, 0, 2)
	if base := strings.Trim(basePath, "/"); base != "" {
		segments = append(segments, base)
	}
	if page != "" {
		segments = append(segments, page)
	}
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/") + "/"
}
