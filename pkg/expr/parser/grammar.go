package parser

import (
	"sort"

	"mackerel-hq/mmpp/pkg/expr/ast"
)

// ArgKind is the kind of argument a function accepts at a position.
type ArgKind int

const (
	ArgIdent     ArgKind = iota // plain identifier, bare or quoted
	ArgRoleIdent                // service:role
	ArgMetric                   // nested metric expression
	ArgFactor                   // double or fraction
	ArgDouble                   // double
	ArgDuration                 // number with unit suffix
)

func (k ArgKind) String() string {
	switch k {
	case ArgIdent:
		return "identifier"
	case ArgRoleIdent:
		return "role identifier (service:role)"
	case ArgMetric:
		return "metric expression"
	case ArgFactor:
		return "factor"
	case ArgDouble:
		return "number"
	case ArgDuration:
		return "duration"
	}
	return "argument"
}

// Signature describes the arguments of a function form.
type Signature struct {
	Func ast.Func
	Rule Rule
	Args []ArgKind

	// Variadic repeats the last argument kind; at least one is required.
	Variadic bool
}

var (
	leafArgs     = []ArgKind{ArgIdent, ArgIdent}
	roleArgs     = []ArgKind{ArgRoleIdent, ArgIdent}
	unaryArgs    = []ArgKind{ArgMetric}
	binaryArgs   = []ArgKind{ArgMetric, ArgMetric}
	factorArgs   = []ArgKind{ArgMetric, ArgFactor}
	durationArgs = []ArgKind{ArgMetric, ArgDuration}
)

var signatures = map[string]Signature{
	"host":             {Func: ast.FuncHost, Rule: RuleHost, Args: leafArgs},
	"service":          {Func: ast.FuncService, Rule: RuleService, Args: leafArgs},
	"role":             {Func: ast.FuncRole, Rule: RuleRole, Args: roleArgs},
	"roleSlots":        {Func: ast.FuncRoleSlots, Rule: RuleRoleSlots, Args: roleArgs},
	"avg":              {Func: ast.FuncAvg, Rule: RuleAvg, Args: unaryArgs},
	"max":              {Func: ast.FuncMax, Rule: RuleMax, Args: unaryArgs},
	"min":              {Func: ast.FuncMin, Rule: RuleMin, Args: unaryArgs},
	"product":          {Func: ast.FuncProduct, Rule: RuleProduct, Args: unaryArgs},
	"stack":            {Func: ast.FuncStack, Rule: RuleStack, Args: unaryArgs},
	"diff":             {Func: ast.FuncDiff, Rule: RuleDiff, Args: binaryArgs},
	"divide":           {Func: ast.FuncDivide, Rule: RuleDivide, Args: binaryArgs},
	"scale":            {Func: ast.FuncScale, Rule: RuleScale, Args: factorArgs},
	"offset":           {Func: ast.FuncOffset, Rule: RuleOffset, Args: factorArgs},
	"percentile":       {Func: ast.FuncPercentile, Rule: RulePercentile, Args: []ArgKind{ArgMetric, ArgDouble}},
	"timeShift":        {Func: ast.FuncTimeShift, Rule: RuleTimeShift, Args: durationArgs},
	"movingAverage":    {Func: ast.FuncMovingAverage, Rule: RuleMovingAverage, Args: durationArgs},
	"linearRegression": {Func: ast.FuncLinearRegression, Rule: RuleLinearRegression, Args: durationArgs},
	"timeLeftForecast": {Func: ast.FuncTimeLeftForecast, Rule: RuleTimeLeftForecast, Args: []ArgKind{ArgMetric, ArgDuration, ArgFactor}},
	"group":            {Func: ast.FuncGroup, Rule: RuleGroup, Args: unaryArgs, Variadic: true},
}

// Lookup returns the signature of the named function.
func Lookup(name string) (Signature, bool) {
	sig, ok := signatures[name]
	return sig, ok
}

// Functions returns the names of all functions in sorted order.
func Functions() []string {
	names := make([]string, 0, len(signatures))
	for name := range signatures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ArgNames returns a description of each argument of sig.
func (sig Signature) ArgNames() []string {
	names := make([]string, 0, len(sig.Args)+1)
	for _, kind := range sig.Args {
		names = append(names, kind.String())
	}
	if sig.Variadic {
		names = append(names, "...")
	}
	return names
}

// signatureOf returns the signature that produced a function node.
func signatureOf(rule Rule) (Signature, bool) {
	for _, sig := range signatures {
		if sig.Rule == rule {
			return sig, true
		}
	}
	return Signature{}, false
}
