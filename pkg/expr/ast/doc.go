// Package ast provides the Abstract Syntax Tree (AST) for metric expressions.
//
// A metric expression names a monitoring series (host, service, role or
// role slot metrics) or combines series with functions such as avg, diff,
// scale or group:
//
//	avg(group(host(h1, loadavg5), host(h2, loadavg5)))
//
// # Core Types
//
// Metric: sealed interface implemented by every node. The concrete node
// types are *Host, *Service, *Role, *RoleSlots (leaves), *Avg, *Max, *Min,
// *Product, *Stack (unary), *Diff, *Divide (binary), *Scale, *Offset,
// *Percentile, *TimeShift, *MovingAverage, *LinearRegression (unary with a
// parameter), *TimeLeftForecast (unary with two parameters) and *Group
// (variadic).
//
// Factor: scale/offset/forecast parameter, either a Double or a Fraction.
//
// Percentage, Duration: opaque literal tokens.
//
// Location: source position used by parse errors.
//
// # Literal Tokens
//
// Numeric parameters keep the exact source text ("3.140e10", "-31.4/6.25",
// "3mo"). Nothing in this module performs arithmetic on them, so the
// canonical form reproduces them verbatim.
//
// # Traversal
//
// Exhaustive type switches are the normal way to consume a tree:
//
//	switch n := m.(type) {
//	case *ast.Host:
//	    fmt.Println(n.HostID, n.MetricName)
//	case *ast.Group:
//	    for _, child := range n.Children {
//	        // ...
//	    }
//	}
//
// Walk visits every node depth-first, left to right:
//
//	err := ast.Walk(m, func(n ast.Metric) error {
//	    fmt.Println(n.FuncName())
//	    return nil
//	})
//
// # Immutability
//
// Trees are built once by the parser and treated as read-only afterwards.
// Nodes are never shared between trees.
package ast
