package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"
)

// Feed describes one source of journey submissions and how its frontiers are
// maintained.
type Feed struct {
	Identifier string `yaml:"identifier"`
	Name       string `yaml:"name"`

	Queue string `yaml:"queue"`

	Dominance struct {
		ConsiderTime      bool `yaml:"consider_time"`
		ConsiderBoardings bool `yaml:"consider_boardings"`
	} `yaml:"dominance"`

	// ISO8601 durations, e.g. "P7D" and "PT30M"
	Retention   string `yaml:"retention"`
	FrontierTTL string `yaml:"frontier_ttl"`
}

const defaultFrontierTTL = 30 * time.Minute
const defaultRetention = 7 * 24 * time.Hour

func (f *Feed) FrontierTTLDuration() time.Duration {
	return parseISO8601Duration(f.FrontierTTL, defaultFrontierTTL)
}

func (f *Feed) RetentionDuration() time.Duration {
	return parseISO8601Duration(f.Retention, defaultRetention)
}

func parseISO8601Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}

	parsed, err := iso8601.ParseISO8601(value)
	if err != nil {
		log.Error().Err(err).Str("duration", value).Msg("Failed to parse ISO8601 duration")
		return fallback
	}

	now := time.Now()
	return parsed.Shift(now).Sub(now)
}

// LoadFeeds reads every multi-document YAML file under the given directory.
func LoadFeeds(directory string) ([]Feed, error) {
	var feeds []Feed

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() {
				return nil
			}

			if filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading feeds file")

			feedsYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(feedsYaml))

			for {
				var feed Feed
				if decoder.Decode(&feed) != nil {
					break
				}

				feeds = append(feeds, feed)
			}

			return nil
		})
	if err != nil {
		return nil, err
	}

	return feeds, nil
}

// GetFeed finds a feed by identifier.
func GetFeed(feeds []Feed, identifier string) (Feed, error) {
	for _, feed := range feeds {
		if feed.Identifier == identifier {
			return feed, nil
		}
	}

	return Feed{}, fmt.Errorf("no feed registered with identifier %s", identifier)
}
