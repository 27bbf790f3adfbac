package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeCollection struct {
	docs []interface{}
	err  error
}

func (f *fakeCollection) InsertOne(_ context.Context, doc interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.docs = append(f.docs, doc)
	return &mongo.InsertOneResult{InsertedID: doc.(*Record).ID}, nil
}

func TestMongoStore_Insert(t *testing.T) {
	coll := &fakeCollection{}
	s := &MongoStore{coll: coll, log: zerolog.Nop()}

	require.NoError(t, s.Insert(context.Background(), sampleRecord()))
	require.Len(t, coll.docs, 1)
	assert.Equal(t, "widget", coll.docs[0].(*Record).ProductName)
	assert.NoError(t, s.Close(context.Background()))
}

func TestMongoStore_InsertError(t *testing.T) {
	boom := errors.New("not primary")
	s := &MongoStore{coll: &fakeCollection{err: boom}, log: zerolog.Nop()}

	err := s.Insert(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, boom)
}

func TestRecord_BSONFieldNames(t *testing.T) {
	raw, err := bson.Marshal(sampleRecord())
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	for _, key := range []string{"_id", "product_name", "demand", "forecast_steps", "predictions", "sales_data", "marketing_cost", "price", "graph_data", "diagnostics", "created_at"} {
		assert.Contains(t, doc, key)
	}

	raw, err = bson.Marshal(&Record{ID: "history-mode", Demand: []float64{1}})
	require.NoError(t, err)
	doc = bson.M{}
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.NotContains(t, doc, "sales_data")
	assert.NotContains(t, doc, "price")
	assert.NotContains(t, doc, "diagnostics")
}
