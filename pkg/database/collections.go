package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createDirectoryIndexes()
	createJourneyRecordsIndexes()
}

func createDirectoryIndexes() {
	stopsCollection := GetCollection("stops")
	stopsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "location.coordinates", Value: "2d"}},
		},
		{
			Keys: bson.D{{Key: "otheridentifiers", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := stopsCollection.Indexes().CreateMany(context.Background(), stopsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	tripsCollection := GetCollection("trips")
	tripsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = tripsCollection.Indexes().CreateMany(context.Background(), tripsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createJourneyRecordsIndexes() {
	journeyRecordsCollection := GetCollection("journey_records")
	journeyRecordsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "feed", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "originstopref", Value: 1},
				{Key: "destinationstopref", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "departuredatetime", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := journeyRecordsCollection.Indexes().CreateMany(context.Background(), journeyRecordsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
