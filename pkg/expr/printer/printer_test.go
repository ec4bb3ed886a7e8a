package printer

import (
	"strings"
	"testing"

	"mackerel-hq/mmpp/pkg/expr/ast"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
)

func host(id, metric string) *ast.Host {
	return &ast.Host{HostID: id, MetricName: metric}
}

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		metric ast.Metric
		want   string
	}{
		{
			name:   "host",
			metric: host("22CXRB3pZmu", "loadavg5"),
			want:   "host(22CXRB3pZmu, loadavg5)",
		},
		{
			name:   "service",
			metric: &ast.Service{ServiceName: "Blog", MetricName: "custom.access_count.*"},
			want:   "service(Blog, custom.access_count.*)",
		},
		{
			name:   "role",
			metric: &ast.Role{ServiceName: "Blog", RoleName: "db", MetricName: "memory.*"},
			want:   "role(Blog:db, memory.*)",
		},
		{
			name:   "roleSlots",
			metric: &ast.RoleSlots{ServiceName: "Blog", RoleName: "db", MetricName: "loadavg5"},
			want:   "roleSlots(Blog:db, loadavg5)",
		},
		{
			name:   "depth 2 unary is inline",
			metric: &ast.Avg{Child: &ast.Role{ServiceName: "Blog", RoleName: "db", MetricName: "loadavg5"}},
			want:   "avg(role(Blog:db, loadavg5))",
		},
		{
			name: "depth 3 unary is multi-line",
			metric: &ast.Avg{Child: &ast.Group{Children: []ast.Metric{
				host("a", "b"),
				host("c", "d"),
			}}},
			want: lines(
				"avg(",
				"  group(",
				"    host(a, b),",
				"    host(c, d)",
				"  )",
				")",
			),
		},
		{
			name:   "nested unary",
			metric: &ast.Max{Child: &ast.Avg{Child: host("a", "b")}},
			want: lines(
				"max(",
				"  avg(host(a, b))",
				")",
			),
		},
		{
			name:   "diff is always multi-line",
			metric: &ast.Diff{Left: &ast.Service{ServiceName: "Blog", MetricName: "foo.bar"}, Right: &ast.Service{ServiceName: "Blog", MetricName: "foo.baz"}},
			want: lines(
				"diff(",
				"  service(Blog, foo.bar),",
				"  service(Blog, foo.baz)",
				")",
			),
		},
		{
			name:   "divide with nested operand",
			metric: &ast.Divide{Left: &ast.Stack{Child: host("a", "b")}, Right: &ast.Product{Child: &ast.Min{Child: host("c", "d")}}},
			want: lines(
				"divide(",
				"  stack(",
				"    host(a, b)",
				"  ),",
				"  product(",
				"    min(host(c, d))",
				"  )",
				")",
			),
		},
		{
			name:   "scale inline",
			metric: &ast.Scale{Child: host("a", "b"), Factor: ast.Double{Text: "3.140e10"}},
			want:   "scale(host(a, b), 3.140e10)",
		},
		{
			name:   "offset with fraction multi-line",
			metric: &ast.Offset{Child: &ast.Avg{Child: host("a", "b")}, Factor: ast.Fraction{Numerator: "-31.4", Denominator: "6.25"}},
			want: lines(
				"offset(",
				"  avg(host(a, b)),",
				"  -31.4/6.25",
				")",
			),
		},
		{
			name:   "percentile of group",
			metric: &ast.Percentile{Child: &ast.Group{Children: []ast.Metric{host("a", "b")}}, Percentage: "95"},
			want: lines(
				"percentile(",
				"  group(",
				"    host(a, b)",
				"  ),",
				"  95",
				")",
			),
		},
		{
			name:   "timeShift inline",
			metric: &ast.TimeShift{Child: host("a", "b"), Duration: "1d"},
			want:   "timeShift(host(a, b), 1d)",
		},
		{
			name:   "movingAverage inline",
			metric: &ast.MovingAverage{Child: host("a", "b"), Duration: "12h"},
			want:   "movingAverage(host(a, b), 12h)",
		},
		{
			name:   "linearRegression multi-line",
			metric: &ast.LinearRegression{Child: &ast.Max{Child: host("a", "b")}, Duration: "3mo"},
			want: lines(
				"linearRegression(",
				"  max(host(a, b)),",
				"  3mo",
				")",
			),
		},
		{
			name: "timeLeftForecast is always multi-line",
			metric: &ast.TimeLeftForecast{
				Child:    host("22CXRB3pZmu", "filesystem.drive.used"),
				Duration: "3mo",
				Factor:   ast.Double{Text: "2000000000000"},
			},
			want: lines(
				"timeLeftForecast(",
				"  host(22CXRB3pZmu, filesystem.drive.used),",
				"  3mo,",
				"  2000000000000",
				")",
			),
		},
		{
			name:   "group of one is multi-line",
			metric: &ast.Group{Children: []ast.Metric{host("a", "b")}},
			want: lines(
				"group(",
				"  host(a, b)",
				")",
			),
		},
		{
			name: "group children are rendered at the group's depth minus one",
			metric: &ast.Group{Children: []ast.Metric{
				&ast.Avg{Child: host("a", "b")},
				&ast.Avg{Child: &ast.Avg{Child: host("c", "d")}},
			}},
			want: lines(
				"group(",
				"  avg(",
				"    host(a, b)",
				"  ),",
				"  avg(",
				"    avg(host(c, d))",
				"  )",
				")",
			),
		},
		{
			name: "diff operands share the diff's depth",
			metric: &ast.Diff{
				Left:  &ast.Avg{Child: host("a", "b")},
				Right: &ast.Avg{Child: &ast.Group{Children: []ast.Metric{host("c", "d")}}},
			},
			want: lines(
				"diff(",
				"  avg(",
				"    host(a, b)",
				"  ),",
				"  avg(",
				"    group(",
				"      host(c, d)",
				"    )",
				"  )",
				")",
			),
		},
		{
			name: "shallow parameterised sibling breaks lines",
			metric: &ast.TimeLeftForecast{
				Child:    &ast.Scale{Child: &ast.Max{Child: host("a", "b")}, Factor: ast.Double{Text: "2"}},
				Duration: "1d",
				Factor:   ast.Fraction{Numerator: "1", Denominator: "3"},
			},
			want: lines(
				"timeLeftForecast(",
				"  scale(",
				"    max(host(a, b)),",
				"    2",
				"  ),",
				"  1d,",
				"  1/3",
				")",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.metric)
			if err != nil {
				t.Fatalf("Render() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestRender_GroupOrderIsSignificant(t *testing.T) {
	a := &ast.Group{Children: []ast.Metric{host("a", "b"), host("c", "d")}}
	b := &ast.Group{Children: []ast.Metric{host("c", "d"), host("a", "b")}}

	ra, err := Render(a)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	rb, err := Render(b)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if ra == rb {
		t.Errorf("reordered groups render identically:\n%s", ra)
	}
}

func TestRender_Errors(t *testing.T) {
	var nilHost *ast.Host

	tests := []struct {
		name    string
		metric  ast.Metric
		errType exprErrors.ErrorType
	}{
		{"nil metric", nil, exprErrors.ErrorTypeStructural},
		{"typed nil metric", nilHost, exprErrors.ErrorTypeStructural},
		{"empty group", &ast.Group{}, exprErrors.ErrorTypeStructural},
		{"nested empty group", &ast.Avg{Child: &ast.Group{Children: []ast.Metric{}}}, exprErrors.ErrorTypeStructural},
		{"nil child", &ast.Avg{}, exprErrors.ErrorTypeStructural},
		{"nil right operand", &ast.Diff{Left: host("a", "b")}, exprErrors.ErrorTypeStructural},
		{"nil group member", &ast.Group{Children: []ast.Metric{host("a", "b"), nil}}, exprErrors.ErrorTypeStructural},
		{"nil factor", &ast.Scale{Child: host("a", "b")}, exprErrors.ErrorTypeStructural},
		{"nil forecast factor", &ast.TimeLeftForecast{Child: host("a", "b"), Duration: "1d"}, exprErrors.ErrorTypeStructural},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.metric)
			if err == nil {
				t.Fatalf("Render() = %q, want error", got)
			}
			if et := exprErrors.TypeOf(err); et != tt.errType {
				t.Errorf("error type = %q, want %q", et, tt.errType)
			}
		})
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		name   string
		metric ast.Metric
		want   int
	}{
		{"leaf", host("a", "b"), 1},
		{"unary", &ast.Avg{Child: host("a", "b")}, 2},
		{"parameters do not count", &ast.Scale{Child: host("a", "b"), Factor: ast.Double{Text: "2"}}, 2},
		{"binary takes deepest", &ast.Diff{Left: host("a", "b"), Right: &ast.Avg{Child: host("c", "d")}}, 3},
		{"group", &ast.Avg{Child: &ast.Group{Children: []ast.Metric{host("a", "b"), host("c", "d")}}}, 3},
		{"forecast", &ast.TimeLeftForecast{Child: host("a", "b"), Duration: "3mo", Factor: ast.Double{Text: "1"}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Depth(tt.metric)
			if err != nil {
				t.Fatalf("Depth() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Depth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDepth_Errors(t *testing.T) {
	if _, err := Depth(&ast.Group{}); exprErrors.TypeOf(err) != exprErrors.ErrorTypeStructural {
		t.Errorf("Depth(empty group) error = %v, want structural error", err)
	}
	if _, err := Depth(nil); exprErrors.TypeOf(err) != exprErrors.ErrorTypeStructural {
		t.Errorf("Depth(nil) error = %v, want structural error", err)
	}
	if _, err := Depth(&ast.Max{}); exprErrors.TypeOf(err) != exprErrors.ErrorTypeStructural {
		t.Errorf("Depth(max with nil child) error = %v, want structural error", err)
	}
}

func TestRender_LayoutFollowsGivenDepth(t *testing.T) {
	m := &ast.Avg{Child: host("a", "b")}

	tests := []struct {
		depth int
		want  string
	}{
		{2, "avg(host(a, b))"},
		{3, lines("avg(", "  host(a, b)", ")")},
	}

	for _, tt := range tests {
		got, err := render(m, tt.depth)
		if err != nil {
			t.Fatalf("render() failed: %v", err)
		}
		if strings.Join(got, "\n") != tt.want {
			t.Errorf("render(avg, %d) =\n%s\nwant:\n%s", tt.depth, strings.Join(got, "\n"), tt.want)
		}
	}
}
