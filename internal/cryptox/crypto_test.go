package cryptox

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parcel struct {
	ID    uint64 `json:"id"`
	Owner string `json:"owner"`
}

func TestSealOpen(t *testing.T) {
	data, err := Seal(parcel{ID: 7, Owner: "O"})
	require.NoError(t, err)

	var got parcel
	require.NoError(t, Open(data, &got))
	assert.Equal(t, parcel{ID: 7, Owner: "O"}, got)
}

func TestDigest_KnownValue(t *testing.T) {
	// BLAKE2b-256 of the empty input.
	assert.Equal(t, "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8", Digest(nil))
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("b")))
}

func TestOpen_TamperedPayload(t *testing.T) {
	data, err := Seal(parcel{ID: 1, Owner: "O"})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	env.Payload = json.RawMessage(`{"id":1,"owner":"M"}`)
	tampered, err := json.Marshal(env)
	require.NoError(t, err)

	var got parcel
	err = Open(tampered, &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvariantViolation))
}

func TestOpen_Malformed(t *testing.T) {
	var got parcel
	err := Open([]byte("not json"), &got)
	assert.ErrorIs(t, err, common.ErrInvariantViolation)
}

func TestOpen_PayloadTypeMismatch(t *testing.T) {
	payload := []byte(`"just a string"`)
	data, err := json.Marshal(Envelope{Digest: Digest(payload), Payload: payload})
	require.NoError(t, err)

	var got parcel
	assert.ErrorIs(t, Open(data, &got), common.ErrInvariantViolation)
}
