package analyses

import "errors"

var (
	ErrNoValidResults   = errors.New("no valid chunk results")
	ErrAggregateFailure = errors.New("all chunk analyses failed")
	ErrEmptyContent     = errors.New("document content is empty")
)

const (
	ErrorCodeExtraction = "EXTRACTION_ERROR"
	ErrorCodeInference  = "INFERENCE_ERROR"
	ErrorCodeParse      = "PARSE_ERROR"
	ErrorCodeCache      = "CACHE_ERROR"
	ErrorCodeDelivery   = "DELIVERY_ERROR"
	ErrorCodeAggregate  = "AGGREGATE_FAILURE"
	ErrorCodeInternal   = "INTERNAL_ERROR"
)
