package resumes

import (
	"encoding/json"
	"fmt"
)

// PhotoState distinguishes the four photo cases a draft can be in.
type PhotoState int

const (
	// PhotoUnset means the draft carries no photo change; the persisted
	// photo, if any, stays as it is.
	PhotoUnset PhotoState = iota
	// PhotoPending is a freshly selected image that has not been uploaded.
	PhotoPending
	// PhotoStored references an already uploaded blob by URL.
	PhotoStored
	// PhotoCleared is an explicit request to delete the stored photo.
	PhotoCleared
)

// PhotoBlob is a not-yet-uploaded image. Blobs are immutable once attached
// to a Document; Name/Size/MimeType/LastModified form the content-identity
// surrogate used for dirty detection instead of comparing bytes.
type PhotoBlob struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"type"`
	LastModified int64  `json:"lastModified"`
	Data         []byte `json:"data"`
}

// Photo is the tagged tri-state-plus-null photo field of a Document.
type Photo struct {
	State PhotoState
	Blob  *PhotoBlob // set iff State == PhotoPending
	URL   string     // set iff State == PhotoStored
}

// PendingPhoto builds a Photo carrying a new blob.
func PendingPhoto(blob PhotoBlob) Photo {
	return Photo{State: PhotoPending, Blob: &blob}
}

// StoredPhoto builds a Photo referencing an uploaded blob.
func StoredPhoto(url string) Photo {
	if url == "" {
		return Photo{}
	}
	return Photo{State: PhotoStored, URL: url}
}

// ClearedPhoto builds the explicit "delete existing photo" marker.
func ClearedPhoto() Photo {
	return Photo{State: PhotoCleared}
}

// Surrogate returns a stable identity string for dirty detection. Pending
// blobs compare by name/size/type/modification time, never by bytes, so a
// re-selected but byte-identical file does not force a redundant upload.
func (p Photo) Surrogate() string {
	switch p.State {
	case PhotoPending:
		if p.Blob == nil {
			return "pending"
		}
		return fmt.Sprintf("pending:%s|%d|%s|%d", p.Blob.Name, p.Blob.Size, p.Blob.MimeType, p.Blob.LastModified)
	case PhotoStored:
		return "stored:" + p.URL
	case PhotoCleared:
		return "cleared"
	default:
		return "unset"
	}
}

// Equal compares two photos by surrogate identity.
func (p Photo) Equal(other Photo) bool {
	return p.Surrogate() == other.Surrogate()
}

// MarshalJSON encodes the variant: Unset and Cleared as null, Stored as the
// URL string, Pending as the blob object.
func (p Photo) MarshalJSON() ([]byte, error) {
	switch p.State {
	case PhotoPending:
		return json.Marshal(p.Blob)
	case PhotoStored:
		return json.Marshal(p.URL)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes the variant. An absent field never reaches this
// method and leaves the zero (Unset) value; an explicit null is Cleared.
func (p *Photo) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Photo{State: PhotoCleared}
		return nil
	}
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*p = StoredPhoto(url)
		return nil
	}
	var blob PhotoBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return fmt.Errorf("photo must be null, a URL string, or a blob object: %w", err)
	}
	*p = Photo{State: PhotoPending, Blob: &blob}
	return nil
}
