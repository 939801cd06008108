package archiver

import (
	"archive/tar"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/itinera/itinera/pkg/analysis"
	"github.com/itinera/itinera/pkg/database"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

// Archiver bundles journey records older than the retention cutoff out of
// Mongo into compressed tar bundles, optionally uploading them to a cloud
// bucket. Bundled records are deleted from the live collection.
type Archiver struct {
	OutputDirectory     string
	WriteIndividualFile bool
	WriteBundle         bool
	CloudUpload         bool
	CloudBucketName     string

	Retention time.Duration
}

func (a *Archiver) Perform() {
	log.Info().Interface("archiver", a).Msg("Running Archive process")

	currentTime := time.Now()
	cutOffTime := currentTime.Add(-a.Retention)
	log.Info().Msgf("Archiving journey records older than %s", cutOffTime)

	recordsCollection := database.GetCollection("journey_records")
	searchFilter := bson.M{"departuredatetime": bson.M{"$lt": cutOffTime}}
	cursor, _ := recordsCollection.Find(context.Background(), searchFilter)

	recordCount := 0

	bundleFilename := fmt.Sprintf("%s.tar.zst", currentTime.Format(time.RFC3339))

	var tarWriter *tar.Writer
	var zstdWriter *zstd.Encoder

	if a.WriteBundle {
		bundleFile, err := os.Create(path.Join(a.OutputDirectory, bundleFilename))
		if err != nil {
			log.Error().Err(err).Msg("Failed to open file")
		}

		zstdWriter, _ = zstd.NewWriter(bundleFile)
		defer zstdWriter.Close()
		tarWriter = tar.NewWriter(zstdWriter)
		defer tarWriter.Close()
	}

	for cursor.Next(context.TODO()) {
		var record analysis.JourneyRecord
		err := cursor.Decode(&record)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode JourneyRecord")
			continue
		}

		recordJSON, err := json.Marshal(record)
		if err != nil {
			log.Error().Err(err).Msg("Error converting record to json")
			continue
		}

		filename := strings.ReplaceAll(fmt.Sprintf("%s.json", record.PrimaryIdentifier), "/", "_")

		if a.WriteIndividualFile {
			file, err := os.Create(path.Join(a.OutputDirectory, filename))
			if err != nil {
				log.Error().Err(err).Msg("Failed to open file")
			}

			_, err = file.Write(recordJSON)
			if err != nil {
				log.Error().Err(err).Msg("Failed to write to file")
			}

			file.Close()
		}

		if a.WriteBundle {
			memoryFileInfo := MemoryFileInfo{
				MfiName:    filename,
				MfiSize:    int64(len(recordJSON)),
				MfiMode:    777,
				MfiModTime: currentTime,
				MfiIsDir:   false,
			}

			header, err := tar.FileInfoHeader(memoryFileInfo, filename)
			if err != nil {
				log.Error().Err(err).Msg("Failed to generate tar header")
			}

			err = tarWriter.WriteHeader(header)
			if err != nil {
				log.Error().Err(err).Msg("Failed to write tar header")
			}

			_, err = tarWriter.Write(recordJSON)
			if err != nil {
				log.Error().Err(err).Msg("Failed to write to file")
			}
		}

		recordCount += 1
	}

	if a.WriteBundle {
		tarWriter.Close()
		zstdWriter.Close()
	}

	log.Info().Int("recordCount", recordCount).Msg("Archive document generation complete")

	if a.CloudUpload {
		a.uploadToStorage(bundleFilename)
	}

	recordsCollection.DeleteMany(context.Background(), searchFilter)
}

func (a *Archiver) uploadToStorage(filename string) {
	fullBundlePath := path.Join(a.OutputDirectory, filename)

	client, err := storage.NewClient(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create GCP storage client")
	}

	bucket := client.Bucket(a.CloudBucketName)
	object := bucket.Object(filename)

	reader, err := os.Open(fullBundlePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open file")
	}
	defer reader.Close()

	writer := object.NewWriter(context.Background())

	io.Copy(writer, reader)

	err = writer.Close()

	if err == nil {
		log.Info().Msgf("Written file %s to bucket %s", object.ObjectName(), object.BucketName())
	} else {
		log.Fatal().Err(err).Msg("Failed to write file to GCP")
	}
}
