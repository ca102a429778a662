package crawler

import "fmt"

// FetchError reports a failed page retrieval: transport error, non-2xx
// status, or an unparsable body. The affected frontier entry is dropped;
// the rest of the walk continues.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the failure happened before a response arrived
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PersistError reports a failed repository insert. The draft never
// acquires an id and must not be enqueued for further expansion.
type PersistError struct {
	Entity string // "category" or "product"
	URL    string
	Err    error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s %s: %v", e.Entity, e.URL, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
