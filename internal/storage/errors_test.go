package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestObjectErrorMapsMissingKeys(t *testing.T) {
	assert.NoError(t, objectError("stat object", "assets/a.png", nil))

	for _, err := range []error{
		minio.ErrorResponse{Code: "NoSuchKey"},
		fmt.Errorf("wrapped: %w", minio.ErrorResponse{Code: "NotFound"}),
		errors.New("The specified key does not exist."),
	} {
		got := objectError("stat object", "assets/a.png", err)
		assert.ErrorIs(t, got, ErrObjectNotFound)
		assert.Contains(t, got.Error(), `stat object "assets/a.png"`)
	}

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	got := objectError("remove object", "snapshots/ast/1.json", denied)
	assert.NotErrorIs(t, got, ErrObjectNotFound)
	assert.ErrorAs(t, got, &minio.ErrorResponse{})
}

func TestParseBucketLookup(t *testing.T) {
	for in, want := range map[string]minio.BucketLookupType{
		"":     minio.BucketLookupAuto,
		"Auto": minio.BucketLookupAuto,
		"dns":  minio.BucketLookupDNS,
		"path": minio.BucketLookupPath,
	} {
		got, err := parseBucketLookup(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := parseBucketLookup("virtual")
	assert.Error(t, err)
}
