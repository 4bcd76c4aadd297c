package models

// ProbeFailed is the status recorded when a request produced no response.
// It can never collide with a real HTTP status code.
const ProbeFailed = 0

type PageResult struct {
	URL        string
	StatusCode int
	Body       []byte
	// Err is set when the page could not be fetched; StatusCode may still
	// hold the rejected status.
	Err error
}

type AssetResult struct {
	Reference  string
	URL        string
	StatusCode int
	Err        error
}

func (r AssetResult) Failed() bool {
	return r.StatusCode == ProbeFailed
}
