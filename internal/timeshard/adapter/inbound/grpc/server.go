package grpc_handler

import (
	"context"
	"errors"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/anthanhphan/timeshard/internal/timeshard/port"
	"github.com/anthanhphan/timeshard/pkg/idgen"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server implements the gRPC IDService.
type Server struct {
	service port.IDService
}

var _ IDServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server.
func NewServer(service port.IDService) *Server {
	return &Server{
		service: service,
	}
}

// NextID issues a single ID.
func (s *Server) NextID(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	id, err := s.service.NextID(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.UInt64(uint64(id)), nil
}

// NextIDs issues a batch of IDs, rendered as decimal strings to survive JSON transcoding.
func (s *Server) NextIDs(ctx context.Context, req *wrapperspb.UInt32Value) (*structpb.ListValue, error) {
	ids, err := s.service.NextIDs(ctx, int(req.GetValue()))
	if err != nil {
		return nil, toStatus(err)
	}

	values := make([]*structpb.Value, len(ids))
	for i, id := range ids {
		values[i] = structpb.NewStringValue(id.String())
	}
	return &structpb.ListValue{Values: values}, nil
}

// ParseID decodes an ID.
func (s *Server) ParseID(ctx context.Context, req *wrapperspb.UInt64Value) (*structpb.Struct, error) {
	c := s.service.Parse(ctx, idgen.ID(req.GetValue()))
	out, err := structpb.NewStruct(map[string]interface{}{
		"id":               c.ID.String(),
		"timestamp":        c.Timestamp,
		"timestamp_offset": c.TimestampOffset,
		"node_id":          c.NodeID,
		"sequence":         c.Sequence,
		"datetime":         c.Datetime(),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode components: %v", err)
	}
	return out, nil
}

// GetInfo reports the generator configuration.
func (s *Server) GetInfo(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	info := s.service.Info(ctx)
	out, err := structpb.NewStruct(map[string]interface{}{
		"epoch_bits":        info.EpochBits,
		"node_bits":         info.NodeBits,
		"sequence_bits":     info.SequenceBits,
		"max_nodes":         info.MaxNodes,
		"ids_per_ms":        info.IDsPerMillisecond,
		"global_ids_per_ms": info.GlobalIDsPerMillis,
		"lifetime_years":    info.LifetimeYears,
		"custom_epoch":      info.CustomEpoch,
		"node_id":           info.NodeID,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode info: %v", err)
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, port.ErrInvalidCount), errors.Is(err, idgen.ErrInvalidPrefixPosition):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, idgen.ErrClockMovedBack), errors.Is(err, idgen.ErrTimestampOutOfRange):
		logger.Errorw("ID generation unavailable", "error", err.Error())
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		logger.Errorw("ID request failed", "error", err.Error())
		return status.Error(codes.Internal, err.Error())
	}
}
