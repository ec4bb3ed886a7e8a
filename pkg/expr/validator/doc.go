// Package validator checks metric expression trees that were not produced
// by the parser.
//
// Trees returned by the parser are always valid. Trees built by hand, for
// example by a program generating graph definitions, can contain problems
// the type system does not rule out:
//
//   - Structural: nil nodes, nil factors, empty groups. The printer rejects
//     these.
//   - Literal: identifiers that are empty or cannot be written bare, role
//     parts with ':' or surrounding whitespace, malformed factors,
//     percentages and durations. The printer renders these, but the output
//     does not parse back to the same tree.
//
// # Usage
//
//	v := validator.NewValidator()
//	if err := v.Validate(metric); err != nil {
//	    for _, e := range errors.Flatten(err) {
//	        fmt.Println(e.Message)
//	    }
//	}
//
// Literal checks only run when the structural pass finds nothing, so a
// broken tree is not reported twice.
package validator
