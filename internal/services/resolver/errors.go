package resolver

// ResolverError is a custom error type for resolution failures
type ResolverError string

// Error implements the error interface
func (e ResolverError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidURL       ResolverError = "url must be an absolute http or https URL"
	ErrUnexpectedStatus ResolverError = "unexpected response status"
	ErrTitleNotFound    ResolverError = "no og:title tag found on page"
	ErrStreamNotFound   ResolverError = "no twitter:player:stream tag found on page"
	ErrNilConfig        ResolverError = "config cannot be nil"
	ErrNilHTTPClient    ResolverError = "http client cannot be nil"
	ErrNilClock         ResolverError = "clock cannot be nil"
	ErrNegativeCacheTTL ResolverError = "cache ttl cannot be negative"
	ErrInvalidPageLimit ResolverError = "max page bytes cannot be negative"
)
