package http

const (
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	HeaderRequestID          = "X-Request-Id"

	HeaderValueJson = "application/json"
	HeaderValuePng  = "image/png"
	HeaderValueCsv  = "text/csv"
)
