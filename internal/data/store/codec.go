package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

func encodeEmbedding(embedding []float32) (string, error) {
	data, err := json.Marshal(embedding)
	if err != nil {
		return "", fmt.Errorf("encoding embedding: %w", err)
	}
	return string(data), nil
}

func decodeEmbedding(raw string) ([]float32, error) {
	if raw == "" {
		return nil, nil
	}
	var embedding []float32
	if err := json.Unmarshal([]byte(raw), &embedding); err != nil {
		return nil, fmt.Errorf("decoding embedding: %w", err)
	}
	return embedding, nil
}

func encodeTime(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

func decodeTime(raw string) time.Time {
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}
