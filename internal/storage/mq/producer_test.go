package mq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/tuanvumaihuynh/catalog-search/pkg/ptr"
)

func TestBuildProduceRecord(t *testing.T) {
	rec := buildProduceRecord(ProduceMsg{
		Topic:        "catalog.search.performed",
		Headers:      map[string]string{"X-Correlation-ID": "abc"},
		Payload:      []byte(`{"entrypoint":"chat"}`),
		PartitionKey: ptr.New("chat"),
	})

	assert.Equal(t, "catalog.search.performed", rec.Topic)
	assert.Equal(t, []byte("chat"), rec.Key)
	assert.JSONEq(t, `{"entrypoint":"chat"}`, string(rec.Value))
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, kgo.RecordHeader{Key: "X-Correlation-ID", Value: []byte("abc")}, rec.Headers[0])
}

func TestBuildProduceRecordWithoutKey(t *testing.T) {
	rec := buildProduceRecord(ProduceMsg{Payload: []byte("{}")})

	assert.Nil(t, rec.Key)
	assert.Empty(t, rec.Topic)
	assert.Empty(t, rec.Headers)
}

func TestCountFailed(t *testing.T) {
	results := kgo.ProduceResults{
		{Record: &kgo.Record{}},
		{Record: &kgo.Record{}, Err: errors.New("not leader for partition")},
		{Record: &kgo.Record{}, Err: errors.New("request timed out")},
	}

	assert.Equal(t, 2, countFailed(results))
	assert.Zero(t, countFailed(nil))
}
