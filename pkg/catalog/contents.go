package catalog

import "encoding/json"

// contentsInfo is the "info" block present in every Contents.json.
// Field order matches Xcode's serialization (alphabetical keys).
type contentsInfo struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

// rootContents is the top-level Contents.json of an .xcassets directory.
type rootContents struct {
	Info contentsInfo `json:"info"`
}

// imageEntry describes one raster variant inside an imageset manifest.
type imageEntry struct {
	Filename string `json:"filename"`
	Idiom    string `json:"idiom"`
	Scale    string `json:"scale"`
}

// imagesetContents is the Contents.json of one .imageset directory.
type imagesetContents struct {
	Images []imageEntry `json:"images"`
	Info   contentsInfo `json:"info"`
}

var xcodeInfo = contentsInfo{Author: "xcode", Version: 1}

// marshalContents serializes a manifest the way Xcode writes them:
// four-space indent and a trailing newline. Keeping the byte format stable
// means re-runs leave existing catalogs untouched in version control.
func marshalContents(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
