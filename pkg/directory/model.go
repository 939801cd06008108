package directory

import (
	"encoding/json"
	"time"

	"github.com/itinera/itinera/pkg/trace"
)

// Stop is a directory record for one transit stop.
type Stop struct {
	PrimaryIdentifier string   `groups:"basic"`
	OtherIdentifiers  []string `groups:"basic" json:",omitempty" bson:",omitempty"`

	PrimaryName string `groups:"basic"`

	CreationDateTime     time.Time `groups:"detailed" bson:",omitempty"`
	ModificationDateTime time.Time `groups:"detailed" bson:",omitempty"`

	Location *trace.Location `groups:"basic"`
}

func (s Stop) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *Stop) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}

// TripInfo maps a trip identifier to the mode and service running it.
type TripInfo struct {
	PrimaryIdentifier string `groups:"basic"`

	RouteType   trace.RouteType `groups:"basic"`
	ServiceName string          `groups:"basic" json:",omitempty" bson:",omitempty"`
	OperatorRef string          `groups:"basic" json:",omitempty" bson:",omitempty"`

	CreationDateTime     time.Time `groups:"detailed" bson:",omitempty"`
	ModificationDateTime time.Time `groups:"detailed" bson:",omitempty"`
}

func (t TripInfo) MarshalBinary() ([]byte, error) {
	return json.Marshal(t)
}

func (t *TripInfo) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, t)
}
