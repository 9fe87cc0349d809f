package fetcher

// FetchError is a custom error type for download failures
type FetchError string

// Error implements the error interface
func (e FetchError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrEmptyURL         FetchError = "media URL cannot be empty"
	ErrEmptyDestination FetchError = "destination path cannot be empty"
	ErrUnexpectedStatus FetchError = "unexpected response status"
	ErrTooLarge         FetchError = "media exceeds the maximum download size"
	ErrNilConfig        FetchError = "config cannot be nil"
	ErrNilHTTPClient    FetchError = "http client cannot be nil"
	ErrNegativeMaxBytes FetchError = "max bytes cannot be negative"
)
