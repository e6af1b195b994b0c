// Package sanitizer provides input normalization functions shared by the
// transit and navigator services.
//
// All normalization functions are idempotent. Invalid input yields empty
// strings or empty slices rather than errors; validation happens later.
//
// Normalization includes:
//   - Ids: trim surrounding whitespace; client ids also drop characters that
//     are unsafe in storage keys
//   - Strings: collapse whitespace, trim leading/trailing spaces, strip markup
//   - Slices: remove duplicates and empty values after normalization
//   - Numbers: clamp to valid ranges
package sanitizer
