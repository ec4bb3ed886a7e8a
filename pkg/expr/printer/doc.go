// Package printer renders metric expression trees in canonical form.
//
// The depth of the whole tree is computed first (a leaf has depth 1), and
// each child is rendered at its parent's depth minus one. Unary forms and
// unary forms with a parameter stay on one line when rendered at depth 2 or
// less:
//
//	avg(role(Blog:db, loadavg5))
//	scale(host(a, b), 1/3)
//
// Unary forms at a greater depth, and diff, divide, timeLeftForecast and group at any
// depth, put each argument on its own line, indented two spaces, with the
// closing parenthesis at the level of the form:
//
//	avg(
//	  group(
//	    host(h1, loadavg5),
//	    host(h2, loadavg5)
//	  )
//	)
//
// A subtree therefore breaks lines when a deeper sibling pushes its parent's
// depth up:
//
//	group(
//	  avg(
//	    host(a, b)
//	  ),
//	  avg(
//	    avg(host(c, d))
//	  )
//	)
//
// Identifiers are always written bare and literals are written exactly as
// they were parsed. Structurally equal trees render identically, and
// re-parsing rendered text renders the same text again.
package printer
