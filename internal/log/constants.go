package log

const (
	KeyAppName       = "app"
	KeyTag           = "tag"
	KeyProcess       = "process"
	KeyConfig        = "config"
	KeyRequestID     = "requestId"
	KeyRequestBody   = "requestBody"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeyHeader        = "header"
	KeyBody          = "body"
	KeyRequest       = "request"
	KeyTraceID       = "traceId"
	KeySpanID        = "spanId"

	KeyCacheKey      = "cacheKey"
	KeyCartID        = "cartId"
	KeyCartLines     = "cartLines"
	KeyCustomerID    = "customerId"
	KeyDbURL         = "dbURL"
	KeyPathValues    = "pathValues"
	KeyPaymentMethod = "paymentMethod"
	KeyProduct       = "product"
	KeyProductID     = "productId"
	KeyProducts      = "products"
	KeyQuantity      = "quantity"
	KeyScanInput     = "scanInput"
	KeyToken         = "token"
	KeyTransactionID = "transactionId"
	KeyUserID        = "userId"
	KeyUsername      = "username"
)
