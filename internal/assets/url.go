package assets

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	assetHost    = "res.cloudinary.com"
	uploadMarker = "/upload/"
)

var versionSeg = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL derives the provider public id from a delivery URL.
// Only URLs on the known asset host qualify; anything else yields "" and is
// treated as externally managed. Transform segments (comma-separated
// parameters) and version segments between the upload marker and the real
// path are dropped, the remaining path is URL-decoded and the file extension
// stripped.
func PublicIDFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if !strings.Contains(u.Hostname(), assetHost) {
		return ""
	}
	path := u.EscapedPath()
	idx := strings.Index(path, uploadMarker)
	if idx == -1 {
		return ""
	}
	segs := strings.Split(path[idx+len(uploadMarker):], "/")
	for len(segs) > 1 && (versionSeg.MatchString(segs[0]) || strings.Contains(segs[0], ",")) {
		segs = segs[1:]
	}
	id := strings.Join(segs, "/")
	if dot := strings.LastIndex(id, "."); dot != -1 {
		id = id[:dot]
	}
	if id == "" {
		return ""
	}
	if decoded, err := url.PathUnescape(id); err == nil {
		return decoded
	}
	return id
}

// PolishURL inserts delivery transforms (f_auto,q_auto plus any extras) after
// the upload marker of an asset-host URL. Other URLs pass through untouched.
func PolishURL(src string, extra ...string) string {
	if src == "" {
		return ""
	}
	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	if !strings.Contains(u.Hostname(), assetHost) {
		return src
	}
	idx := strings.Index(src, uploadMarker)
	if idx == -1 {
		return src
	}
	transforms := []string{"f_auto", "q_auto"}
	seen := map[string]bool{"f_auto": true, "q_auto": true}
	for _, t := range extra {
		if t != "" && !seen[t] {
			transforms = append(transforms, t)
			seen[t] = true
		}
	}
	cut := idx + len(uploadMarker)
	return src[:cut] + strings.Join(transforms, ",") + "/" + src[cut:]
}
