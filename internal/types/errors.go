package types

import "errors"

var (
	// ErrUnresolvedAsset means the ticker/name did not map to a known asset id
	ErrUnresolvedAsset = errors.New("asset not resolved")
	// ErrUpstreamUnavailable means a provider returned no usable data for one data kind
	ErrUpstreamUnavailable = errors.New("upstream data unavailable")
	// ErrInsufficientHistory means the series is shorter than an indicator warm-up window
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrClassification means the sentiment model failed for one headline
	ErrClassification = errors.New("classification failed")
	// ErrNoMatchingNews means no headline survived matching
	ErrNoMatchingNews = errors.New("no matching news")
)
