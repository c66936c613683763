package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultTag is assigned to records submitted without a usable tag.
const DefaultTag = "default"

var schemePattern = regexp.MustCompile(`^https?://`)

// LinkRecord is a single catalog entry. URL is the natural key.
type LinkRecord struct {
	URL    string  `json:"url"`
	Tag    string  `json:"tag"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Ratio  float64 `json:"ratio"`
}

// RawRecord is an untrusted record as submitted by a client.
// A client-supplied ratio is never read; it is always recomputed.
type RawRecord struct {
	URL    string  `json:"url"`
	Tag    string  `json:"tag"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewLinkRecord builds a normalized record, validating the URL.
func NewLinkRecord(rawURL, tag string, width, height int) (LinkRecord, error) {
	u := strings.TrimSpace(rawURL)
	if err := validation.Validate(u,
		validation.Required.Error("url is required"),
		validation.Match(schemePattern).Error("url must start with http:// or https://"),
	); err != nil {
		return LinkRecord{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	width, height = max(width, 0), max(height, 0)
	return LinkRecord{
		URL:    u,
		Tag:    NormalizeTag(tag),
		Width:  width,
		Height: height,
		Ratio:  ComputeRatio(width, height),
	}, nil
}

// NormalizeRecord turns an untrusted record into a LinkRecord.
func NormalizeRecord(raw RawRecord) (LinkRecord, error) {
	return NewLinkRecord(raw.URL, raw.Tag, dimension(raw.Width), dimension(raw.Height))
}

// NormalizeURL trims surrounding whitespace; it is the comparison form of a URL.
func NormalizeURL(rawURL string) string {
	return strings.TrimSpace(rawURL)
}

// NormalizeTag lowercases a tag and joins its whitespace-separated words with
// underscores. Blank tags become DefaultTag.
func NormalizeTag(tag string) string {
	t := strings.Join(strings.Fields(strings.ToLower(tag)), "_")
	if t == "" {
		return DefaultTag
	}
	return t
}

// ComputeRatio returns width/height, or 0 when either side is unknown.
func ComputeRatio(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return float64(width) / float64(height)
}

// HasDimensions reports whether both sides are known.
func (r LinkRecord) HasDimensions() bool {
	return r.Width > 0 && r.Height > 0
}

// Dimensions renders "WxH", or "unknown".
func (r LinkRecord) Dimensions() string {
	if !r.HasDimensions() {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// AspectRatio renders the ratio with two decimals.
func (r LinkRecord) AspectRatio() string {
	return strconv.FormatFloat(r.Ratio, 'f', 2, 64)
}

// Catalog is the ordered collection of records. Order is insertion order.
type Catalog []LinkRecord

// URLSet returns the set of URLs present in the catalog.
func (c Catalog) URLSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c))
	for _, r := range c {
		set[r.URL] = struct{}{}
	}
	return set
}

// DecodeRecords parses a JSON array of untrusted records.
// Anything but an array yields ErrInvalidFormat. Elements that are not objects
// of the expected shape are kept as empty records so that normalization drops
// them and the batch length is preserved.
func DecodeRecords(data []byte) ([]RawRecord, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil, fmt.Errorf("%w: expected an array of records", ErrInvalidFormat)
	}

	records := make([]RawRecord, len(items))
	for i, item := range items {
		var r RawRecord
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		records[i] = r
	}
	return records, nil
}

func dimension(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}
