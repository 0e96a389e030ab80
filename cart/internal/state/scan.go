package state

import (
	"strconv"
	"strings"

	"github.com/kiranalabs/pos/internal/common/constants"
)

type InputKind int

const (
	KindScanCode InputKind = iota
	KindFreeText
)

// Classification is the tagged result of interpreting sale-screen input.
// The prefix test alone selects the kind; a scan code and a free-text query
// are never both handled on one call.
type Classification struct {
	Kind InputKind

	// ProductID is set for KindScanCode. Zero means the numeric suffix was
	// missing or malformed; lookups of it fail as not found.
	ProductID int64

	// Query is set for KindFreeText, lowercased for case-insensitive
	// matching.
	Query string
}

func Classify(input string) Classification {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, constants.ScanCodePrefix) {
		suffix := strings.TrimPrefix(trimmed, constants.ScanCodePrefix)
		id, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil || id <= 0 {
			id = 0
		}
		return Classification{Kind: KindScanCode, ProductID: id}
	}
	return Classification{Kind: KindFreeText, Query: strings.ToLower(trimmed)}
}
