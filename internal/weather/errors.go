package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a search is attempted with a blank city.
	ErrEmptyInput = errors.New("enter city name")

	// ErrFetchFailed matches every *FetchError regardless of its kind.
	ErrFetchFailed = errors.New("fetch failed")
)

// FailureKind classifies why a provider call failed.
type FailureKind string

const (
	CityNotFound   FailureKind = "city_not_found"
	ProviderError  FailureKind = "provider_error"
	TransportError FailureKind = "transport_error"
	ParseError     FailureKind = "parse_error"
)

// FetchError is returned by providers for any failed upstream call.
type FetchError struct {
	Kind       FailureKind
	Op         string // "current" or "forecast"
	StatusCode int    // 0 when no response was received
	Message    string // upstream message, if any
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s fetch failed (%s)", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFetchFailed) hold for every kind.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// IsKind reports whether err is a *FetchError of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}
