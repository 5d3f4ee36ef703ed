// Package isbn validates International Standard Book Numbers.
//
// It normalizes raw scanned strings, checks ISBN-10 and ISBN-13 checksums,
// distinguishes book-prefixed EAN-13 codes (978/979) from other product
// barcodes, and extracts candidate identifiers from free-form recognized
// text. Checksum validation is the only cheap, symbology-independent way to
// reject recognition noise and non-book barcodes before committing to a
// metadata lookup.
//
// All functions are pure; the package holds no state and performs no I/O.
package isbn
