// Package commons talks to the Wikimedia Commons image catalog: it derives
// canonical file and thumbnail URLs from image names and resolves license
// and attribution metadata through the Commons API.
package commons

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// FilePathPrefix is the Special:FilePath form in which Wikidata references
// Commons images.
const FilePathPrefix = "http://commons.wikimedia.org/wiki/Special:FilePath/"

const (
	filePageBase  = "https://commons.wikimedia.org/wiki/File:"
	thumbnailBase = "https://upload.wikimedia.org/wikipedia/commons/thumb/"
)

// ImageName extracts the plain image name from a Special:FilePath reference,
// decoding any percent-encoding.
func ImageName(fileURI string) string {
	name := strings.TrimPrefix(fileURI, FilePathPrefix)
	decoded, err := url.PathUnescape(name)
	if err != nil {
		// Undecodable escapes are carried through verbatim.
		return name
	}
	return decoded
}

// FileURL returns the canonical Commons file page URL for an image name.
func FileURL(imageName string) string {
	return filePageBase + pathQuote(imageName)
}

// ThumbURL derives the upload.wikimedia.org thumbnail URL for an image at the
// requested pixel width. Thumbnails are sharded into folders named after the
// first one and first two hex characters of the MD5 digest of the
// underscored image name.
func ThumbURL(imageName string, width int) string {
	underscored := strings.ReplaceAll(imageName, " ", "_")
	sum := md5.Sum([]byte(underscored))
	digest := hex.EncodeToString(sum[:])
	encoded := pathQuote(underscored)
	return fmt.Sprintf("%s%s/%s/%s/%dpx-%s",
		thumbnailBase, digest[:1], digest[:2], encoded, width, encoded)
}

// pathQuote percent-encodes a path segment, keeping the unreserved set and
// the slash literal. Spaces become %20, never +.
func pathQuote(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-' || c == '_' || c == '.' || c == '~' || c == '/':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
