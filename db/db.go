package db

import (
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/soundevents/constants"
	"github.com/jsphweid/soundevents/model"
	"github.com/jsphweid/soundevents/util"
	"github.com/pkg/errors"
)

const maxUnprocessedRetries = 5

// doubled on every retry
var unprocessedBackoff = 50 * time.Millisecond

// MetadataStore looks up per-file metadata keyed by the file's path
// relative to the media dir.
type MetadataStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewMetadataStore(client dynamodbiface.DynamoDBAPI, table string) *MetadataStore {
	return &MetadataStore{client: client, table: table}
}

// Connect builds a store from the DYNAMO_* settings.
func Connect() (*MetadataStore, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetDynamoRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Could not create a new DynamoDB session")
	}
	return NewMetadataStore(dynamodb.New(sess), constants.GetDynamoTable()), nil
}

// GetMidiMetadatas fetches metadata for filenames, in batches of at most
// MetadataBatchSize keys. Files without an item are absent from the result.
func (s *MetadataStore) GetMidiMetadatas(filenames []string) (map[string]model.MidiMetadata, error) {
	res := make(map[string]model.MidiMetadata)
	for start := 0; start < len(filenames); start += constants.MetadataBatchSize {
		end := util.Min(start+constants.MetadataBatchSize, len(filenames))
		if err := s.getBatch(filenames[start:end], res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *MetadataStore) getBatch(filenames []string, res map[string]model.MidiMetadata) error {
	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}

	requestItems := map[string]*dynamodb.KeysAndAttributes{
		s.table: {Keys: keys},
	}
	// throttled keys come back in UnprocessedKeys and are asked for again
	for attempt := 0; len(requestItems) > 0; attempt++ {
		if attempt > maxUnprocessedRetries {
			return errors.Errorf("DynamoDB left %d keys unprocessed", countKeys(requestItems))
		}
		if attempt > 0 {
			time.Sleep(unprocessedBackoff << (attempt - 1))
		}
		dbres, err := s.client.BatchGetItem(&dynamodb.BatchGetItemInput{RequestItems: requestItems})
		if err != nil {
			return errors.Wrap(err, "Error from DynamoDB")
		}
		for _, v := range dbres.Responses[s.table] {
			pk, meta := parseItem(v)
			if pk != "" {
				res[pk] = meta
			}
		}
		requestItems = dbres.UnprocessedKeys
	}
	return nil
}

func countKeys(items map[string]*dynamodb.KeysAndAttributes) int {
	var n int
	for _, ka := range items {
		if ka != nil {
			n += len(ka.Keys)
		}
	}
	return n
}

func stringAttr(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v != nil && v.S != nil {
		return *v.S
	}
	return ""
}

func parseItem(item map[string]*dynamodb.AttributeValue) (string, model.MidiMetadata) {
	var m model.MidiMetadata
	if v, ok := item["Year"]; ok && v != nil && v.N != nil {
		year, _ := strconv.ParseUint(*v.N, 10, 32)
		m.Year = uint(year)
	}
	m.Artist = stringAttr(item, "Artist")
	m.Release = stringAttr(item, "Release")
	m.Title = stringAttr(item, "Title")
	return stringAttr(item, "PK"), m
}
