package models

// AnnotateURLRequest asks the service to fetch a radiograph from a URL and
// annotate it, instead of receiving the file as a multipart upload.
type AnnotateURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AnnotateWithDataResponse carries both the annotated image (base64 PNG) and
// the region descriptor in a single JSON body.
type AnnotateWithDataResponse struct {
	Image       string      `json:"image"`
	Annotations Annotations `json:"annotations"`
}
