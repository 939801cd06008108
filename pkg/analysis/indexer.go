package analysis

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/itinera/itinera/pkg/elastic_client"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"
)

func recordIndexName(t time.Time) string {
	yearNumber, weekNumber := t.ISOWeek()
	return fmt.Sprintf("journey-records-%d-%d", yearNumber, weekNumber)
}

// IndexRecord queues one record for bulk indexing into the weekly records
// index.
func IndexRecord(record *JourneyRecord) {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		log.Error().Err(err).Msg("Error converting record to json")
		return
	}

	elastic_client.IndexRequest(recordIndexName(record.CreationDateTime), bytes.NewReader(recordJSON))
}

// Indexer re-indexes archived record bundles from a cloud bucket into
// Elasticsearch.
type Indexer struct {
	CloudBucketName string
}

func (i *Indexer) Perform() {
	client, err := storage.NewClient(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create GCP storage client")
	}

	bucket := client.Bucket(i.CloudBucketName)

	objects := bucket.Objects(context.TODO(), nil)

	for {
		objectAttr, err := objects.Next()

		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Error().Err(err).Msg("Failed to iterate over bucket")
			break
		}

		log.Info().Msgf("Found bundle file %s", objectAttr.Name)

		if i.bundleIndexed(objectAttr.Name) {
			log.Info().Msgf("Bundle file %s already indexed", objectAttr.Name)
			continue
		}

		object := bucket.Object(objectAttr.Name)
		storageReader, err := object.NewReader(context.Background())
		if err != nil {
			log.Error().Err(err).Msgf("Failed to get object %s", objectAttr.Name)
			continue
		}

		i.indexRecordsBundle(objectAttr.Name, storageReader)

		storageReader.Close()
	}

	elastic_client.WaitUntilQueueEmpty()
}

func (i *Indexer) bundleIndexed(bundleName string) bool {
	var queryBytes bytes.Buffer
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"BundleSourceFile.keyword": bundleName,
			},
		},
	}
	json.NewEncoder(&queryBytes).Encode(query)

	res, err := esapi.CountRequest{
		Index: []string{"journey-records-*"},
		Body:  &queryBytes,
	}.Do(context.Background(), elastic_client.Client)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check bundle index state")
		return false
	}
	defer res.Body.Close()

	var countResponse struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&countResponse); err != nil {
		return false
	}

	return countResponse.Count > 0
}

func (i *Indexer) indexRecordsBundle(bundleName string, reader io.Reader) {
	zstdReader, err := zstd.NewReader(reader)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to decompress bundle %s", bundleName)
		return
	}
	defer zstdReader.Close()

	tarReader := tar.NewReader(zstdReader)

	recordCount := 0
	for {
		header, err := tarReader.Next()

		if err == io.EOF {
			break
		}
		if err != nil {
			log.Error().Err(err).Msgf("Failed to read bundle %s", bundleName)
			return
		}

		recordBytes, err := io.ReadAll(tarReader)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to read %s from bundle", header.Name)
			continue
		}

		var record JourneyRecord
		if err := json.Unmarshal(recordBytes, &record); err != nil {
			log.Error().Err(err).Msgf("Failed to decode %s from bundle", header.Name)
			continue
		}

		record.BundleSourceFile = bundleName

		recordJSON, _ := json.Marshal(record)
		elastic_client.IndexRequest(recordIndexName(record.CreationDateTime), bytes.NewReader(recordJSON))

		recordCount += 1
	}

	log.Info().Int("recordCount", recordCount).Msgf("Indexed bundle %s", bundleName)
}
