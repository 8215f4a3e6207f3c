// Package cli implements the sigil command-line interface.
//
// The CLI is a thin driver over the core operations in
// [github.com/ardnew/sigil/lang]: it loads registry sources (schema
// files, inline declarations, user type flags), hands the core
// structured pairs plus expression text, and presents results and
// errors. It performs no parsing or resolution itself.
package cli
