package report

import "errors"

var (
	// ErrEmptyPayload is returned when a report payload has no content:
	// a flat mapping with no keys, or a structured payload with zero
	// sections and zero insights.
	ErrEmptyPayload = errors.New("payload cannot be empty")

	// ErrUnsupportedChartType is returned for chart types outside
	// bar, pie and line. The wrapped message names the offending value.
	ErrUnsupportedChartType = errors.New("unsupported chart type")

	// ErrAlreadyFinalized is returned when a mutator is called on a
	// builder after Save.
	ErrAlreadyFinalized = errors.New("document already finalized")
)
