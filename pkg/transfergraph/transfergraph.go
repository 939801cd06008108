package transfergraph

import (
	"context"
	"fmt"
	"os"

	"github.com/itinera/itinera/pkg/analysis"
	"github.com/itinera/itinera/pkg/database"
	"github.com/itinera/itinera/pkg/util"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

// transferEdge aggregates every observed transfer between one pair of stops.
type transferEdge struct {
	FromStop string
	ToStop   string

	Count int
	Trips []string
}

// GraphSync pushes the transfer structure of the recorded journeys for a feed
// into Neo4j. Stops become nodes, observed transfers between them become
// TRANSFER relationships weighted by how often they appear.
type GraphSync struct {
	Feed string
}

func (g *GraphSync) Perform(ctx context.Context) error {
	driver, err := neo4j.NewDriverWithContext(
		getNeo4jURI(),
		neo4j.BasicAuth(
			os.Getenv("ITINERA_NEO4J_USERNAME"),
			os.Getenv("ITINERA_NEO4J_PASSWORD"),
			"",
		))
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return err
	}

	session := driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: "neo4j"})
	defer session.Close(ctx)

	stops, edges, err := g.aggregateTransfers(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Str("feed", g.Feed).
		Int("stops", len(stops)).
		Int("edges", len(edges)).
		Msg("Syncing transfer graph")

	for _, stopRef := range stops {
		_, err := session.ExecuteWrite(ctx,
			func(tx neo4j.ManagedTransaction) (any, error) {
				_, err := tx.Run(
					ctx,
					"MERGE (s:Stop {primaryidentifier: $primaryidentifier})",
					map[string]any{
						"primaryidentifier": stopRef,
					})

				return nil, err
			})
		if err != nil {
			return err
		}
	}

	for _, edge := range edges {
		_, err := session.ExecuteWrite(ctx,
			func(tx neo4j.ManagedTransaction) (any, error) {
				_, err := tx.Run(
					ctx, `
					MATCH (a:Stop {primaryidentifier: $from})
					MATCH (b:Stop {primaryidentifier: $to})
					MERGE (a)-[t:TRANSFER {feed: $feed}]->(b)
					SET t.count = $count, t.trips = $trips
					`, map[string]any{
						"from":  edge.FromStop,
						"to":    edge.ToStop,
						"feed":  g.Feed,
						"count": edge.Count,
						"trips": edge.Trips,
					})

				return nil, err
			})
		if err != nil {
			return err
		}
	}

	return nil
}

// aggregateTransfers walks every record of the feed and counts how often each
// transfer stop pair appears, collecting the trip pairs observed across it.
func (g *GraphSync) aggregateTransfers(ctx context.Context) ([]string, []transferEdge, error) {
	recordsCollection := database.GetCollection("journey_records")
	cursor, err := recordsCollection.Find(ctx, bson.M{"feed": g.Feed})
	if err != nil {
		return nil, nil, err
	}

	var stops []string
	edgesByKey := map[string]*transferEdge{}
	var edgeOrder []string

	for cursor.Next(ctx) {
		var record analysis.JourneyRecord
		if err := cursor.Decode(&record); err != nil {
			log.Error().Err(err).Msg("Failed to decode JourneyRecord")
			continue
		}

		for index, stopPair := range record.TransferStopPairs {
			stops = append(stops, stopPair.From, stopPair.To)

			key := fmt.Sprintf("%s/%s", stopPair.From, stopPair.To)
			edge := edgesByKey[key]
			if edge == nil {
				edge = &transferEdge{FromStop: stopPair.From, ToStop: stopPair.To}
				edgesByKey[key] = edge
				edgeOrder = append(edgeOrder, key)
			}

			edge.Count += 1

			if index < len(record.TransferTripPairs) {
				tripPair := record.TransferTripPairs[index]
				edge.Trips = append(edge.Trips, fmt.Sprintf("%s/%s", tripPair.From, tripPair.To))
			}
		}
	}

	stops = util.RemoveDuplicateStrings(stops, []string{})

	var edges []transferEdge
	for _, key := range edgeOrder {
		edge := edgesByKey[key]
		edge.Trips = util.RemoveDuplicateStrings(edge.Trips, []string{})
		edges = append(edges, *edge)
	}

	return stops, edges, nil
}

func getNeo4jURI() string {
	uri := os.Getenv("ITINERA_NEO4J_URI")
	if uri == "" {
		uri = "neo4j://localhost"
	}

	return uri
}
