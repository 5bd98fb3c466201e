package storage

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromURL(t *testing.T) {
	s := &s3Storage{bucket: "portal-media", region: "eu-west-1"}

	key, err := s.keyFromURL("https://portal-media.s3.eu-west-1.amazonaws.com/activities/act-1/cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, "activities/act-1/cover.jpg", key)

	_, err = s.keyFromURL("https://portal-media.s3.eu-west-1.amazonaws.com/")
	assert.Error(t, err)
}

func TestProgressReader(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 1000)

	var last, calls int64
	r := &progressReader{
		r:     bytes.NewReader(data),
		total: int64(len(data)),
		progress: func(uploaded, total int64) {
			last = uploaded
			calls++
			assert.Equal(t, int64(1000), total)
		},
	}

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.Equal(t, int64(1000), last)
	assert.GreaterOrEqual(t, calls, int64(1))
}
