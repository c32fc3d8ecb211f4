package model

import (
	"regexp"
	"strings"
)

// Barcode length constants for the symbologies that carry a mandatory
// mod-10 check digit.
const (
	// EAN8Length is the length of an EAN-8 code.
	EAN8Length = 8

	// UPCALength is the length of a UPC-A code.
	UPCALength = 12

	// EAN13Length is the length of an EAN-13 code.
	EAN13Length = 13
)

// numericCodePattern matches codes made up entirely of digits.
// Only fully numeric codes are candidates for check-digit validation;
// alphanumeric symbologies (Code 39, Code 128) have no mandatory checksum.
var numericCodePattern = regexp.MustCompile(`^[0-9]+$`)

// NormalizeCode canonicalizes a decoded or user-entered barcode value.
// It trims surrounding whitespace and removes interior spaces that
// keyboard-wedge scanners sometimes inject between digit groups.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	return strings.ReplaceAll(code, " ", "")
}

// IsValidCode reports whether a code is plausible enough to act on.
//
// For EAN-8, UPC-A and EAN-13 lengths the mod-10 check digit is verified.
// Numeric codes of other lengths and alphanumeric codes are accepted as-is
// because their symbologies carry no mandatory check digit.
//
// Design decision: We verify the check digit rather than trusting the
// decoder because a misread frame that damages one digit would otherwise
// need several identical misreads to be filtered out by the confirmation
// engine. The check digit rejects such frames on first sight.
func IsValidCode(code string) bool {
	code = NormalizeCode(code)
	if code == "" {
		return false
	}
	if !numericCodePattern.MatchString(code) {
		// Alphanumeric symbology: nothing to verify.
		return true
	}

	switch len(code) {
	case EAN8Length, UPCALength, EAN13Length:
		return checkDigit(code[:len(code)-1]) == code[len(code)-1]
	default:
		return true
	}
}

// checkDigit computes the GS1 mod-10 check digit for the given digit
// string (the code without its final digit) and returns it as a byte.
//
// Digits are weighted 3,1,3,... from the rightmost position. The check
// digit is the amount needed to round the weighted sum up to a multiple
// of ten.
func checkDigit(digits string) byte {
	sum := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight = 4 - weight // alternate 3 and 1
	}
	return byte('0' + (10-sum%10)%10)
}
