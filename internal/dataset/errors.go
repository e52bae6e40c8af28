package dataset

import "errors"

var (
	// ErrEmpty indicates a dataset file without any regions.
	ErrEmpty = errors.New("dataset: no regions defined")

	ErrUnknownMetric  = errors.New("dataset: unknown region metric")
	ErrUnknownSeries  = errors.New("dataset: unknown monthly series")
	ErrRegionNotFound = errors.New("dataset: region not found")
)
