package Upload

import "fmt"

// TransportError reports an upload that did not succeed: the request
// failed, the endpoint answered non-2xx or unreadable content, or its
// status was not "success". Message is what the user is shown.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upload failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return "upload failed: " + e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
