package parser

import (
	"fmt"
	"strings"

	"mackerel-hq/mmpp/pkg/expr/ast"
)

// Rule tags a parse tree node with the grammar rule that produced it.
type Rule int

const (
	RuleInvalid Rule = iota

	// Function forms
	RuleHost
	RuleService
	RuleRole
	RuleRoleSlots
	RuleAvg
	RuleMax
	RuleMin
	RuleProduct
	RuleStack
	RuleDiff
	RuleDivide
	RuleScale
	RuleOffset
	RulePercentile
	RuleTimeShift
	RuleMovingAverage
	RuleLinearRegression
	RuleTimeLeftForecast
	RuleGroup

	// Arguments
	RuleIdentifier     // plain identifier, quotes stripped
	RuleRoleIdentifier // service:role, children are the two identifiers
	RuleLiteral        // numeric or duration token, verbatim
	RuleFraction       // numerator/denominator, children are two literals
)

var ruleNames = map[Rule]string{
	RuleInvalid:          "invalid",
	RuleIdentifier:       "identifier",
	RuleRoleIdentifier:   "role_identifier",
	RuleLiteral:          "literal",
	RuleFraction:         "fraction",
	RuleHost:             string(ast.FuncHost),
	RuleService:          string(ast.FuncService),
	RuleRole:             string(ast.FuncRole),
	RuleRoleSlots:        string(ast.FuncRoleSlots),
	RuleAvg:              string(ast.FuncAvg),
	RuleMax:              string(ast.FuncMax),
	RuleMin:              string(ast.FuncMin),
	RuleProduct:          string(ast.FuncProduct),
	RuleStack:            string(ast.FuncStack),
	RuleDiff:             string(ast.FuncDiff),
	RuleDivide:           string(ast.FuncDivide),
	RuleScale:            string(ast.FuncScale),
	RuleOffset:           string(ast.FuncOffset),
	RulePercentile:       string(ast.FuncPercentile),
	RuleTimeShift:        string(ast.FuncTimeShift),
	RuleMovingAverage:    string(ast.FuncMovingAverage),
	RuleLinearRegression: string(ast.FuncLinearRegression),
	RuleTimeLeftForecast: string(ast.FuncTimeLeftForecast),
	RuleGroup:            string(ast.FuncGroup),
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// Node is a node of the parse tree. Function nodes hold their arguments as
// ordered children; identifier and literal nodes hold their token text.
type Node struct {
	Rule     Rule
	Text     string
	Children []*Node
	Location ast.Location
}

// String renders the tree as an S-expression, mainly for debugging and tests.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Rule {
	case RuleIdentifier, RuleLiteral:
		fmt.Fprintf(sb, "(%s %q)", n.Rule, n.Text)
		return
	}
	sb.WriteString("(")
	sb.WriteString(n.Rule.String())
	for _, child := range n.Children {
		sb.WriteString(" ")
		child.write(sb)
	}
	sb.WriteString(")")
}
