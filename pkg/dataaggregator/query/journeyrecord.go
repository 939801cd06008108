package query

import "go.mongodb.org/mongo-driver/bson"

type JourneyRecord struct {
	PrimaryIdentifier string
}

func (r *JourneyRecord) ToBson() bson.M {
	if r.PrimaryIdentifier != "" {
		return bson.M{"primaryidentifier": r.PrimaryIdentifier}
	}

	return nil
}
