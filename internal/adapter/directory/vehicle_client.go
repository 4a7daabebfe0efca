package directory

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
)

// VehicleClient reads the vehicle registry over HTTP.
type VehicleClient struct {
	*baseClient
}

var (
	_ ports.VehicleDirectory        = (*VehicleClient)(nil)
	_ ports.VehicleExistenceChecker = (*VehicleClient)(nil)
)

func NewVehicleClient(baseURL string, timeout time.Duration) (*VehicleClient, error) {
	base, err := newBaseClient("vehicle", baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &VehicleClient{baseClient: base}, nil
}

func (c *VehicleClient) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	result, err := c.submit(ctx, "getVehicle", http.MethodGet, "/{id}",
		func(req runtime.ClientRequest, _ strfmt.Registry) error {
			return req.SetPathParam("id", strconv.FormatInt(id, 10))
		},
		func(resp runtime.ClientResponse, consumer runtime.Consumer) (interface{}, error) {
			var envelope vehicleEnvelope
			if err := consumeBody(resp, consumer, &envelope); err != nil {
				return nil, err
			}
			if envelope.Vehicle == nil {
				return nil, domain.NewError(domain.ErrNotFound, "vehicle %d not found", id)
			}
			if err := envelope.Vehicle.Validate(c.formats); err != nil {
				return nil, err
			}
			return envelope.Vehicle.toDomain(), nil
		},
	)
	if err != nil {
		return nil, err
	}
	return result.(*domain.Vehicle), nil
}

func (c *VehicleClient) VehicleExists(ctx context.Context, id int64) (bool, error) {
	_, err := c.GetVehicle(ctx, id)
	return exists(err)
}

// exists folds a lookup error into the existence-check contract.
func exists(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, err
}
