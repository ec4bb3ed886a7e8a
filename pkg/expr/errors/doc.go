// Package errors provides the error types reported while parsing, validating
// and rendering metric expressions.
//
// Every problem is an *Error with a Type (syntax, shape, limit, structural,
// internal, io), a Message, the source Location and optionally a source
// excerpt (Context) and a Suggestion:
//
//	[syntax] unknown function "avgg"
//	  --> <stdin>:1:1
//	  |
//	-> 1 | avgg(host(a, b))
//	     | ^
//	  |
//	  = suggestion: Did you mean 'avg'?
//
// Validation accumulates problems in an ErrorList. TypeOf, IsSyntax and
// IsShape classify any error returned by this module.
package errors
