package constant

import "time"

const (
	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"
)

const QUERY_TIMEOUT_DURATION = 5 * time.Second

const (
	DefaultPageSize uint = 50
	MaxPageSize     uint = 200
)
