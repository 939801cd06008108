package analysis

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled record-selection expression, e.g.
// `transfers > 1 && travel_time < 3600`.
type Filter struct {
	expression string
	program    *vm.Program
}

func CompileFilter(expression string) (*Filter, error) {
	program, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", expression, err)
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

func (f *Filter) Match(record *JourneyRecord) (bool, error) {
	result, err := expr.Run(f.program, record.Environment())
	if err != nil {
		return false, fmt.Errorf("running filter %q: %w", f.expression, err)
	}

	return result.(bool), nil
}

// Environment is the variable set a filter expression evaluates against.
func (r *JourneyRecord) Environment() map[string]interface{} {
	return map[string]interface{}{
		"feed":        r.Feed,
		"origin":      r.OriginStopRef,
		"destination": r.DestinationStopRef,

		"departure_time": r.DepartureTime,
		"arrival_time":   r.ArrivalTime,

		"legs":      len(r.Legs),
		"boardings": r.Boardings,
		"transfers": r.Transfers,

		"travel_time":          r.TravelTime,
		"total_waiting_time":   r.TotalWaitingTime,
		"total_invehicle_time": r.TotalInVehicleTime,
		"total_walking_time":   r.TotalWalkingTime,
	}
}
