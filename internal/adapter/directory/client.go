package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/go-openapi/runtime"
	httptransport "github.com/go-openapi/runtime/client"
	"github.com/go-openapi/strfmt"
)

const jsonMime = "application/json"

// baseClient talks to one sibling service through a go-openapi transport.
type baseClient struct {
	service   string
	transport *httptransport.Runtime
	schemes   []string
	formats   strfmt.Registry
}

func newBaseClient(service, rawURL string, timeout time.Duration) (*baseClient, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid %s service url %q", service, rawURL)
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "http"
	}
	basePath := u.Path
	if basePath == "" {
		basePath = "/"
	}
	schemes := []string{scheme}
	transport := httptransport.NewWithClient(u.Host, basePath, schemes, &http.Client{Timeout: timeout})

	return &baseClient{
		service:   service,
		transport: transport,
		schemes:   schemes,
		formats:   strfmt.Default,
	}, nil
}

type errorPayload struct {
	Message string `json:"message"`
}

// submit runs one operation. Domain errors produced while reading the response
// pass through, anything else means the service could not be reached.
func (c *baseClient) submit(ctx context.Context, id, method, pathPattern string, params runtime.ClientRequestWriterFunc, ok func(runtime.ClientResponse, runtime.Consumer) (interface{}, error)) (interface{}, error) {
	result, err := c.transport.Submit(&runtime.ClientOperation{
		ID:                 id,
		Method:             method,
		PathPattern:        pathPattern,
		ProducesMediaTypes: []string{jsonMime},
		ConsumesMediaTypes: []string{jsonMime},
		Schemes:            c.schemes,
		Params:             params,
		Reader: runtime.ClientResponseReaderFunc(func(resp runtime.ClientResponse, consumer runtime.Consumer) (interface{}, error) {
			if resp.Code() >= 200 && resp.Code() < 300 {
				return ok(resp, consumer)
			}
			return nil, c.readError(resp, consumer)
		}),
		Context: ctx,
	})
	if err != nil {
		var domainErr *domain.Error
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		return nil, domain.Upstream(c.service, err)
	}
	return result, nil
}

func (c *baseClient) readError(resp runtime.ClientResponse, consumer runtime.Consumer) error {
	var payload errorPayload
	if err := consumer.Consume(resp.Body(), &payload); err != nil && !errors.Is(err, io.EOF) {
		payload.Message = ""
	}
	msg := payload.Message
	if msg == "" {
		msg = fmt.Sprintf("%s service answered %d", c.service, resp.Code())
	}

	switch resp.Code() {
	case http.StatusBadRequest:
		return domain.NewError(domain.ErrValidation, "%s", msg)
	case http.StatusUnauthorized:
		return domain.NewError(domain.ErrUnauthorized, "%s", msg)
	case http.StatusNotFound:
		return domain.NewError(domain.ErrNotFound, "%s", msg)
	case http.StatusConflict:
		return domain.NewError(domain.ErrConflict, "%s", msg)
	default:
		return runtime.NewAPIError(msg, payload, resp.Code())
	}
}

func consumeBody(resp runtime.ClientResponse, consumer runtime.Consumer, into interface{}) error {
	if err := consumer.Consume(resp.Body(), into); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func noParams(runtime.ClientRequest, strfmt.Registry) error {
	return nil
}
