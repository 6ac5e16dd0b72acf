package search

import (
	"regexp"
	"strings"
)

// extractorFunc pulls one display field out of a raw result.
type extractorFunc func(Result) string

// sourceExtractor groups the field extractors for one data source.
type sourceExtractor struct {
	name  extractorFunc
	url   extractorFunc
	image extractorFunc
}

// extractors maps a data-source identifier to its extraction strategy.
// Adding a source means adding one entry here, not branching elsewhere.
var extractors = map[string]sourceExtractor{
	SourceAmazon: {
		name:  amazonName,
		url:   amazonURL,
		image: amazonURL, // no separate image source for amazon data
	},
	SourceIBMStore: {
		name:  ibmStoreName,
		url:   ibmStoreURL,
		image: ibmStoreImage,
	},
	SourceCatalog: {
		name:  metadataField("name"),
		url:   metadataField("url"),
		image: metadataField("image"),
	},
}

// Extract pulls (name, url, image) for one result using the strategy
// for the given source, sanitized for chat display. Unknown sources and
// missing structure yield empty fields, never errors.
func Extract(r Result, source string) (name, url, image string) {
	ex, ok := extractors[source]
	if !ok {
		return "", "", ""
	}
	return sanitize(ex.name(r)), sanitize(ex.url(r)), sanitize(ex.image(r))
}

// amazonName reads the product title the enrichment pipeline stored in
// the extracted metadata.
func amazonName(r Result) string {
	title, _ := r.Metadata["title"].(string)
	return title
}

// ibmStoreName scans the text blob for the "Product: <name> Category:"
// pattern. The character before the category marker is a separator, not
// part of the name.
func ibmStoreName(r Result) string {
	const productTag = "Product:"
	const categoryTag = "Category:"

	start := strings.Index(r.Text, productTag)
	if start < 0 {
		return ""
	}
	start += len(productTag)

	end := strings.Index(r.Text[start:], categoryTag)
	if end <= 0 {
		return ""
	}
	end += start

	return strings.TrimSpace(r.Text[start : end-1])
}

// amazonURL takes the last anchor in the HTML blob; product links sit at
// the end of the document for this source.
func amazonURL(r Result) string {
	const hrefTag = "<a href="

	start := strings.LastIndex(r.HTML, hrefTag)
	if start < 0 {
		return ""
	}
	start += len(hrefTag)

	end := strings.Index(r.HTML[start:], ">")
	if end <= 0 {
		return ""
	}
	end += start

	// Drop the quote characters wrapping the href value.
	if start+1 >= end-1 {
		return ""
	}
	return r.HTML[start+1 : end-1]
}

// ibmStoreURL rebuilds the product page URL from the 6-character product
// id embedded in the detail-page path.
func ibmStoreURL(r Result) string {
	const urlStart = "http://www.logostore-globalid.us"
	const hrefTag = "/ProductDetail.aspx?pid="

	idx := strings.Index(r.HTML, hrefTag)
	if idx < 0 {
		return ""
	}
	idx += len(hrefTag)
	if idx+6 > len(r.HTML) {
		return ""
	}

	return urlStart + hrefTag + r.HTML[idx:idx+6]
}

var scaleDirective = regexp.MustCompile(`scale\[[0-9]+\]`)

// ibmStoreImage pulls the image URL out of the zoom anchor and shrinks
// the requested rendition.
func ibmStoreImage(r Result) string {
	const imgTag = `<a class="jqzoom" href="`

	start := strings.Index(r.HTML, imgTag)
	if start < 0 {
		return ""
	}
	start += len(imgTag)

	end := strings.Index(r.HTML[start:], `"`)
	if end <= 0 {
		return ""
	}

	img := r.HTML[start : start+end]
	return scaleDirective.ReplaceAllString(img, "scale[50]")
}

// metadataField reads a plain string field from the result metadata.
// The local catalog backend emits structured entries, so no scanning is
// needed.
func metadataField(key string) extractorFunc {
	return func(r Result) string {
		v, _ := r.Metadata[key].(string)
		return v
	}
}

// sanitize escapes &, < and > for chat display. Ampersand goes first so
// entities introduced by the later replacements survive.
func sanitize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
