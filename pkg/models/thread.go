package models

// Thread is one board thread. The JSON field names define the persisted
// record format and must not change for existing databases to stay readable.
type Thread struct {
	ID    int32  `json:"id"`
	Title string `json:"title"`
	// Message is the opening post body.
	Message string `json:"message"`
	// LastUpdated is a unix timestamp (seconds), bumped on every accepted
	// reply. Listing order is derived from it.
	LastUpdated int64 `json:"last_updated"`
	// ImageURL is the relative URL of an uploaded image, nil when the
	// thread was created without one.
	ImageURL *string `json:"image_url"`
}
