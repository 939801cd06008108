package global

import (
	"github.com/itinera/itinera/pkg/dataaggregator"
	"github.com/itinera/itinera/pkg/dataaggregator/source/databaselookup"
)

func Setup() {
	dataaggregator.GlobalAggregator = dataaggregator.Aggregator{}

	dataaggregator.GlobalAggregator.RegisterSource(databaselookup.Source{})
}
