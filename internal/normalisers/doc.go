// Package normalisers extracts plain text from resume files.
//
// Each sub-package handles one family of extensions. Reader dispatches on
// the lower-cased file extension and rejects anything no normaliser claims.
package normalisers
