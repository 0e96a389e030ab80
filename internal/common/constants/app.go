package constants

const (
	AppPosService = "pos-service"
	AudiencePos   = "audience-pos"

	// ScanCodePrefix is the payload prefix encoded in every product QR code.
	// A scanner emulating keyboard entry emits ScanCodePrefix followed by the
	// numeric product id.
	ScanCodePrefix = "POS_PRODUCT_"
)

// Transaction statuses. The first three record how a sale was settled,
// StatusPayment marks a negative-amount debt repayment, StatusVoid a
// cancelled sale excluded from revenue.
const (
	StatusCash    = "cash"
	StatusCard    = "card"
	StatusCredit  = "credit"
	StatusPayment = "payment"
	StatusVoid    = "void"
)
