// Package exchangeratesapi implements a rate source for the
// exchangeratesapi.io historical endpoint.
//
// One request is made per calendar day:
//
//	GET {base_url}/{YYYY-MM-DD}?base={currency}[&access_key={key}]
//
// A 2xx response carries {base, date, rates}. Any other status, a transport
// failure or an undecodable body is returned as a *domain.FetchError so the
// caller can classify it. The client never retries on its own; it only
// throttles outbound requests with a token bucket.
package exchangeratesapi
