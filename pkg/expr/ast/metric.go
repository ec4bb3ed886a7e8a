package ast

// Func is the function name that introduces a metric form in source text.
type Func string

const (
	FuncHost             Func = "host"
	FuncService          Func = "service"
	FuncRole             Func = "role"
	FuncRoleSlots        Func = "roleSlots"
	FuncAvg              Func = "avg"
	FuncMax              Func = "max"
	FuncMin              Func = "min"
	FuncProduct          Func = "product"
	FuncStack            Func = "stack"
	FuncDiff             Func = "diff"
	FuncDivide           Func = "divide"
	FuncScale            Func = "scale"
	FuncOffset           Func = "offset"
	FuncPercentile       Func = "percentile"
	FuncTimeShift        Func = "timeShift"
	FuncMovingAverage    Func = "movingAverage"
	FuncLinearRegression Func = "linearRegression"
	FuncTimeLeftForecast Func = "timeLeftForecast"
	FuncGroup            Func = "group"
)

// Metric is a node of a metric expression tree.
// The set of implementations is closed; see the package documentation.
type Metric interface {
	// Func returns the function name of the node.
	Func() Func

	metric()
}

// Host is a metric of a single host: host(hostId, metricName).
type Host struct {
	HostID     string
	MetricName string
}

// Service is a service metric: service(serviceName, metricName).
type Service struct {
	ServiceName string
	MetricName  string
}

// Role is a metric of every host in a role: role(service:role, metricName).
type Role struct {
	ServiceName string
	RoleName    string
	MetricName  string
}

// RoleSlots is the per-slot metric of a role: roleSlots(service:role, metricName).
type RoleSlots struct {
	ServiceName string
	RoleName    string
	MetricName  string
}

// Avg averages the series of its child.
type Avg struct{ Child Metric }

// Max takes the maximum of the series of its child.
type Max struct{ Child Metric }

// Min takes the minimum of the series of its child.
type Min struct{ Child Metric }

// Product multiplies the series of its child.
type Product struct{ Child Metric }

// Stack stacks the series of its child.
type Stack struct{ Child Metric }

// Diff subtracts Right from Left.
type Diff struct {
	Left  Metric
	Right Metric
}

// Divide divides Left by Right.
type Divide struct {
	Left  Metric
	Right Metric
}

// Scale multiplies its child by Factor.
type Scale struct {
	Child  Metric
	Factor Factor
}

// Offset adds Factor to its child.
type Offset struct {
	Child  Metric
	Factor Factor
}

// Percentile takes the given percentile of its child.
type Percentile struct {
	Child      Metric
	Percentage Percentage
}

// TimeShift shifts its child in time by Duration.
type TimeShift struct {
	Child    Metric
	Duration Duration
}

// MovingAverage averages its child over a sliding Duration window.
type MovingAverage struct {
	Child    Metric
	Duration Duration
}

// LinearRegression fits its child over the trailing Duration.
type LinearRegression struct {
	Child    Metric
	Duration Duration
}

// TimeLeftForecast forecasts when its child, observed over Duration,
// reaches the Factor threshold.
type TimeLeftForecast struct {
	Child    Metric
	Duration Duration
	Factor   Factor
}

// Group bundles several metrics. The order of Children is significant.
type Group struct {
	Children []Metric
}

func (*Host) Func() Func             { return FuncHost }
func (*Service) Func() Func          { return FuncService }
func (*Role) Func() Func             { return FuncRole }
func (*RoleSlots) Func() Func        { return FuncRoleSlots }
func (*Avg) Func() Func              { return FuncAvg }
func (*Max) Func() Func              { return FuncMax }
func (*Min) Func() Func              { return FuncMin }
func (*Product) Func() Func          { return FuncProduct }
func (*Stack) Func() Func            { return FuncStack }
func (*Diff) Func() Func             { return FuncDiff }
func (*Divide) Func() Func           { return FuncDivide }
func (*Scale) Func() Func            { return FuncScale }
func (*Offset) Func() Func           { return FuncOffset }
func (*Percentile) Func() Func       { return FuncPercentile }
func (*TimeShift) Func() Func        { return FuncTimeShift }
func (*MovingAverage) Func() Func    { return FuncMovingAverage }
func (*LinearRegression) Func() Func { return FuncLinearRegression }
func (*TimeLeftForecast) Func() Func { return FuncTimeLeftForecast }
func (*Group) Func() Func            { return FuncGroup }

func (*Host) metric()             {}
func (*Service) metric()          {}
func (*Role) metric()             {}
func (*RoleSlots) metric()        {}
func (*Avg) metric()              {}
func (*Max) metric()              {}
func (*Min) metric()              {}
func (*Product) metric()          {}
func (*Stack) metric()            {}
func (*Diff) metric()             {}
func (*Divide) metric()           {}
func (*Scale) metric()            {}
func (*Offset) metric()           {}
func (*Percentile) metric()       {}
func (*TimeShift) metric()        {}
func (*MovingAverage) metric()    {}
func (*LinearRegression) metric() {}
func (*TimeLeftForecast) metric() {}
func (*Group) metric()            {}

// IsLeaf returns true if m references a series directly
// (host, service, role or roleSlots).
func IsLeaf(m Metric) bool {
	switch m.(type) {
	case *Host, *Service, *Role, *RoleSlots:
		return true
	}
	return false
}
