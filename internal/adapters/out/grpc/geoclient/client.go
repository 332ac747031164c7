// Package geoclient resolves free-text addresses through the geo service over
// gRPC. Messages are google.protobuf.Struct values:
//
//	request: {"address": "<free text>"}
//	reply:   {"latitude": <number>, "longitude": <number>}
package geoclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/ports"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// GeocodeMethod is the full gRPC method name served by the geo service.
const GeocodeMethod = "/geo.Geo/GetGeolocation"

// UnresolvedAddressMessage is shown to the user when the geo service does not
// know the address.
const UnresolvedAddressMessage = "We could not find that address. Please provide another address or ENDMEAL to quit"

// ErrMalformedReply is returned when a successful reply lacks latitude or
// longitude.
var ErrMalformedReply = errors.New("geo service reply has no coordinates")

var _ ports.Geocoder = (*Client)(nil)

// Client resolves street addresses to coordinates through the geo service.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient connects lazily to host; the first Geocode call dials.
func NewClient(host string) (*Client, error) {
	if strings.TrimSpace(host) == "" {
		return nil, errors.New("geo service host is empty")
	}
	conn, err := grpc.NewClient(host, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("geo service client: %w", err)
	}
	return &Client{conn: conn}, nil
}

// NewClientFromConn wraps an existing connection.
func NewClientFromConn(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	if strings.TrimSpace(address) == "" {
		return kernel.GeoPoint{}, catalog.NewAddressResolutionError(UnresolvedAddressMessage, nil)
	}

	req, err := structpb.NewStruct(map[string]any{"address": address})
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	reply := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, GeocodeMethod, req, reply); err != nil {
		switch status.Code(err) {
		case codes.NotFound, codes.InvalidArgument:
			return kernel.GeoPoint{}, catalog.NewAddressResolutionError(UnresolvedAddressMessage, err)
		default:
			return kernel.GeoPoint{}, fmt.Errorf("geocode %q: %w", address, err)
		}
	}

	lat, okLat := numberField(reply, "latitude")
	lng, okLng := numberField(reply, "longitude")
	if !okLat || !okLng {
		return kernel.GeoPoint{}, ErrMalformedReply
	}

	return kernel.NewGeoPoint(lat, lng)
}

// Close releases the connection when the client owns one.
func (c *Client) Close() error {
	if closer, ok := c.conn.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func numberField(s *structpb.Struct, name string) (float64, bool) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, false
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	return n.NumberValue, true
}
