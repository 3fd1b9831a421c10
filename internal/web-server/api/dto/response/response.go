package response

import (
	"encoding/json"
	"time"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Timestamp   string  `json:"timestamp"`
	Environment string  `json:"environment"`
	Uptime      float64 `json:"uptime"`
}

type SampleData struct {
	Message      string `json:"message"`
	Server       string `json:"server"`
	Timestamp    string `json:"timestamp"`
	RandomNumber int    `json:"randomNumber"`
}

type DataResponse struct {
	Status string     `json:"status"`
	Data   SampleData `json:"data"`
}

type EchoResponse struct {
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	ReceivedData json.RawMessage `json:"receivedData"`
	Timestamp    string          `json:"timestamp"`
}
