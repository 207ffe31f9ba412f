package constants

import (
	"os"
	"runtime"
	"strconv"
)

func getenvOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// GetMediaDir is the root that relative MIDI paths are resolved against.
func GetMediaDir() string {
	return getenvOr("MEDIA_PATH", ".")
}

func GetLogLevel() string {
	return getenvOr("LOG_LEVEL", "info")
}

func GetListenAddr() string {
	return getenvOr("LISTEN_ADDR", ":8080")
}

// GetWorkers is the number of files converted in parallel by batch runs.
func GetWorkers() int {
	if n, err := strconv.Atoi(os.Getenv("WORKERS")); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func GetDynamoEndpoint() string {
	return getenvOr("DYNAMO_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getenvOr("DYNAMO_REGION", "localhost")
}

func GetDynamoTable() string {
	return getenvOr("DYNAMO_TABLE", "harmondex-metadata")
}

// DynamoDB BatchGetItem accepts at most this many keys per table here.
const MetadataBatchSize = 10

// Requests to /convert larger than this are rejected.
const MaxUploadSize = 16 * 1024 * 1024
