package exchangeratesapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// statusError converts a non-2xx response into a FetchError.
func statusError(resp *http.Response, url string, body []byte) *domain.FetchError {
	return &domain.FetchError{
		StatusCode: resp.StatusCode,
		URL:        url,
		Body:       strings.TrimSpace(string(body)),
	}
}

// transportError wraps a failure that produced no response.
func transportError(url string, err error) *domain.FetchError {
	return &domain.FetchError{URL: url, Err: err}
}

// decodeError wraps a 2xx response whose body is not a rate payload.
func decodeError(resp *http.Response, url string, body []byte, err error) *domain.FetchError {
	return &domain.FetchError{
		StatusCode: resp.StatusCode,
		URL:        url,
		Body:       strings.TrimSpace(string(body)),
		Err:        fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err),
	}
}
