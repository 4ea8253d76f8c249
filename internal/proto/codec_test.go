package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Name())
}

func TestCodec_PlainMessages(t *testing.T) {
	data, err := Codec{}.Marshal(&CreateLeaseRequest{AssetID: 1, Owner: "O", Lessee: "L", StartTime: 100, EndTime: 200, PaymentAmount: 50})
	require.NoError(t, err)
	assert.JSONEq(t, `{"asset_id":1,"owner":"O","lessee":"L","start_time":100,"end_time":200,"payment_amount":50}`, string(data))

	var got CreateLeaseRequest
	require.NoError(t, Codec{}.Unmarshal([]byte(`{"asset_id":18446744073709551615}`), &got))
	assert.Equal(t, ^uint64(0), got.AssetID)
}

func TestCodec_ProtoMessagesUseProtojson(t *testing.T) {
	data, err := Codec{}.Marshal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"SERVING"}`, string(data))

	var got healthpb.HealthCheckResponse
	require.NoError(t, Codec{}.Unmarshal(data, &got))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, got.GetStatus())
}
