package grpc_handler

import (
	"context"
	"net"
	"testing"

	"github.com/anthanhphan/timeshard/internal/timeshard/port"
	"github.com/anthanhphan/timeshard/internal/timeshard/port/mocks"
	"github.com/anthanhphan/timeshard/internal/timeshard/service"
	"github.com/anthanhphan/timeshard/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startServer(t *testing.T, svc port.IDService) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterIDServiceServer(srv, NewServer(svc))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })

	return NewClient(cc)
}

func TestServer_RoundTrip(t *testing.T) {
	sf, err := idgen.New(idgen.DefaultConfig(21))
	require.NoError(t, err)
	client := startServer(t, service.NewIDService(sf, nil, 100))
	ctx := context.Background()

	id, err := client.NextID(ctx)
	require.NoError(t, err)

	parsed, err := client.ParseID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id.String(), parsed["id"])
	assert.Equal(t, float64(21), parsed["node_id"])

	ids, err := client.NextIDs(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	info, err := client.GetInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(10), info["node_bits"])
	assert.Equal(t, float64(12), info["sequence_bits"])
}

func TestServer_ErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
	}{
		{name: "ClockMovedBack", err: &idgen.ClockMovedBackError{Last: 2, Current: 1}, wantCode: codes.Unavailable},
		{name: "OutOfRange", err: idgen.ErrTimestampOutOfRange, wantCode: codes.Unavailable},
		{name: "InvalidCount", err: port.ErrInvalidCount, wantCode: codes.InvalidArgument},
		{name: "Other", err: assert.AnError, wantCode: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockIDService(ctrl)
			svc.EXPECT().NextIDs(gomock.Any(), 4).Return(nil, tt.err)

			client := startServer(t, svc)
			_, err := client.NextIDs(context.Background(), 4)
			assert.Equal(t, tt.wantCode, status.Code(err))
		})
	}
}
