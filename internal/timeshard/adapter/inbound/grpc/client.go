package grpc_handler

import (
	"context"
	"fmt"

	"github.com/anthanhphan/timeshard/pkg/idgen"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls a remote timeshard.v1.IDService.
type Client struct {
	conn grpc.ClientConnInterface
	cc   *grpc.ClientConn
}

// Dial connects to addr without transport security.
func Dial(addr string) (*Client, error) {
	cc, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client for %s: %w", addr, err)
	}
	return &Client{conn: cc, cc: cc}, nil
}

// NewClient wraps an existing connection.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) NextID(ctx context.Context) (idgen.ID, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.conn.Invoke(ctx, methodNextID, &emptypb.Empty{}, out); err != nil {
		return 0, err
	}
	return idgen.ID(out.GetValue()), nil
}

func (c *Client) NextIDs(ctx context.Context, count uint32) ([]string, error) {
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, methodNextIDs, wrapperspb.UInt32(count), out); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(out.GetValues()))
	for _, v := range out.GetValues() {
		ids = append(ids, v.GetStringValue())
	}
	return ids, nil
}

func (c *Client) ParseID(ctx context.Context, id idgen.ID) (map[string]interface{}, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, methodParseID, wrapperspb.UInt64(uint64(id)), out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

func (c *Client) GetInfo(ctx context.Context) (map[string]interface{}, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, methodGetInfo, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

// Close closes the connection if the client owns it.
func (c *Client) Close() error {
	if c.cc == nil {
		return nil
	}
	return c.cc.Close()
}
