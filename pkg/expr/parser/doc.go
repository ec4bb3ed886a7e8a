// Package parser provides tokenizing, parsing and AST construction for
// metric expressions.
//
// Parsing happens in two stages. ParseTree matches the input against the
// grammar and produces a parse tree of Nodes tagged with a Rule. Parse then
// hands the tree to the AST builder, which checks literal shapes and
// produces an ast.Metric.
//
// # Basic Usage
//
//	p := parser.NewParser()
//	metric, err := p.Parse("avg(group(host(h1, loadavg5), host(h2, loadavg5)))")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Grammar
//
// Every form is a function name followed by a parenthesised argument list.
// The function name decides how each argument is read:
//
//	host(identifier, identifier)
//	service(identifier, identifier)
//	role(service:role, identifier)
//	roleSlots(service:role, identifier)
//	avg|max|min|product|stack(metric)
//	diff|divide(metric, metric)
//	scale|offset(metric, factor)
//	percentile(metric, number)
//	timeShift|movingAverage|linearRegression(metric, duration)
//	timeLeftForecast(metric, duration, factor)
//	group(metric, metric, ...)
//
// Identifiers are bare ([A-Za-z0-9._*-]+) or quoted with ' or ". Quoted
// content is taken literally and there are no escapes. A role identifier is
// service:role, bare or inside one quoted string. The bare form allows no
// whitespace around the colon; the quoted form has both parts trimmed.
// A factor is a number or two numbers separated by '/'. A duration is a
// number followed by a unit such as d, h or mo. Whitespace between tokens
// is ignored.
//
// # Errors
//
// Grammar violations are reported as errors of type syntax. Literal
// arguments that match the grammar but not the shape of their position,
// such as scale(host(a, b), abc), are reported as errors of type shape.
// Both carry the location of the offending token and a source excerpt:
//
//	[syntax] unknown function "hots"
//	  --> <input>:1:5
//	  |
//	-> 1 | avg(hots(a, b))
//	     |     ^
//	  |
//	  = suggestion: Did you mean 'host'?
//
// # Limits
//
// Nesting depth and input size are bounded (WithMaxDepth,
// WithMaxInputBytes). Exceeding either is an error of type limit.
//
// A Parser holds only configuration; concurrent calls are safe.
package parser
