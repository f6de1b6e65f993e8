package vcs

import (
	"errors"

	"github.com/google/go-github/v60/github"
)

// IsAPIError reports whether err is an error envelope returned by the API
// (an object carrying a message), as opposed to a transport failure.
// go-github returns an ErrorResponse for any non-2xx status; one without a
// decoded message, such as a proxy's HTML error page, is not an envelope.
func IsAPIError(err error) bool {
	var (
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
	)
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return true
	}
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Message != ""
}

// APIErrorMessage returns the message field of an API error envelope, or
// err.Error() for anything else.
func APIErrorMessage(err error) string {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Message != "" {
		return errResp.Message
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Message != "" {
		return rateErr.Message
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Message != "" {
		return abuseErr.Message
	}
	return err.Error()
}
