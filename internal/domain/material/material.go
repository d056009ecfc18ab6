package material

import "time"

// Material is an uploaded study resource visible in the materials list.
type Material struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	FileURL     string    `json:"file_url"`
	UploaderID  int64     `json:"uploader_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Upload is the indexed text of an uploaded file, keyed by upload id and
// consumed by the chat subsystem for context injection.
type Upload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Text string `json:"-"`
}

// MaxIndexedText caps how much extracted text is kept per upload.
const MaxIndexedText = 20000

// ClampText truncates extracted text to MaxIndexedText characters.
func ClampText(text string) string {
	if len(text) > MaxIndexedText {
		return text[:MaxIndexedText]
	}
	return text
}
