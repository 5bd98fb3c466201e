package domain

// ImageAsset is either existing (already uploaded, addressed by URL) or
// pending (local bytes only). List order matters: index 0 is the cover of
// the committed set.
type ImageAsset struct {
	ID      int64  `json:"id,omitempty"`
	URL     string `json:"url,omitempty"`
	IsCover bool   `json:"is_cover"`

	// Pending-side fields, never sent to the supplier.
	FileName    string `json:"file_name,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Width       int    `json:"width,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Data        []byte `json:"-"`
}

// Existing reports whether the asset has already been persisted. A stored
// URL with no local bytes means the blob is already in object storage even
// when the supplier did not echo back a numeric ID.
func (a ImageAsset) Existing() bool {
	return a.ID != 0 || (a.URL != "" && len(a.Data) == 0)
}
