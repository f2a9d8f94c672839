// Package scraper pulls the embedded page state out of fetched HTML.
package scraper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/Ramsey-B/fern/pkg/errors"
)

// NextDataSelector matches the script element holding the page state.
const NextDataSelector = "script#__NEXT_DATA__"

// ExtractNextData returns the decoded page state of an HTML page. A page
// without the script element is not found.
func ExtractNextData(r io.Reader) (any, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	script := doc.Find(NextDataSelector).First()
	if script.Length() == 0 {
		return nil, fmt.Errorf("%w: page has no %s", errors.ErrNotFound, NextDataSelector)
	}

	return Decode([]byte(strings.TrimSpace(script.Text())))
}

// ExtractNextDataBytes is ExtractNextData over an in-memory page.
func ExtractNextDataBytes(html []byte) (any, error) {
	return ExtractNextData(bytes.NewReader(html))
}

// Decode decodes a JSON document the way parsers expect it: objects as
// map[string]any and numbers as float64.
func Decode(raw []byte) (any, error) {
	var document any
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("%w: malformed page data: %w", errors.ErrInvalidInput, err)
	}
	return document, nil
}
