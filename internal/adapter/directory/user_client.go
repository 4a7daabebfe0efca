package directory

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
)

// UserClient reads the user service over HTTP.
type UserClient struct {
	*baseClient
}

var (
	_ ports.UserDirectory        = (*UserClient)(nil)
	_ ports.UserExistenceChecker = (*UserClient)(nil)
	_ ports.UserAccounts         = (*UserClient)(nil)
)

func NewUserClient(baseURL string, timeout time.Duration) (*UserClient, error) {
	base, err := newBaseClient("user", baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &UserClient{baseClient: base}, nil
}

func (c *UserClient) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	result, err := c.submit(ctx, "getUser", http.MethodGet, "/{identifier}",
		func(req runtime.ClientRequest, _ strfmt.Registry) error {
			return req.SetPathParam("identifier", strconv.FormatInt(id, 10))
		},
		c.readUser,
	)
	if err != nil {
		return nil, err
	}
	return result.(*domain.User), nil
}

func (c *UserClient) UserExists(ctx context.Context, id int64) (bool, error) {
	_, err := c.GetUser(ctx, id)
	return exists(err)
}

func (c *UserClient) ListUsers(ctx context.Context) ([]*domain.User, error) {
	result, err := c.submit(ctx, "listUsers", http.MethodGet, "/", noParams,
		func(resp runtime.ClientResponse, consumer runtime.Consumer) (interface{}, error) {
			var envelope usersEnvelope
			if err := consumeBody(resp, consumer, &envelope); err != nil {
				return nil, err
			}
			users := make([]*domain.User, 0, len(envelope.Users))
			for _, payload := range envelope.Users {
				if payload == nil {
					continue
				}
				if err := payload.Validate(c.formats); err != nil {
					return nil, err
				}
				users = append(users, payload.toDomain())
			}
			return users, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return result.([]*domain.User), nil
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *UserClient) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	result, err := c.submit(ctx, "verifyCredentials", http.MethodPost, "/credentials/verify",
		func(req runtime.ClientRequest, _ strfmt.Registry) error {
			return req.SetBodyParam(&credentialsBody{Email: email, Password: password})
		},
		c.readUser,
	)
	if err != nil {
		return nil, err
	}
	return result.(*domain.User), nil
}

type registerBody struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (c *UserClient) RegisterUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	body := &registerBody{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Address:   user.Address,
		Email:     user.Email,
		Password:  password,
		Role:      string(user.Role),
	}
	result, err := c.submit(ctx, "createUser", http.MethodPost, "/",
		func(req runtime.ClientRequest, _ strfmt.Registry) error {
			return req.SetBodyParam(body)
		},
		c.readUser,
	)
	if err != nil {
		return nil, err
	}
	return result.(*domain.User), nil
}

func (c *UserClient) readUser(resp runtime.ClientResponse, consumer runtime.Consumer) (interface{}, error) {
	var envelope userEnvelope
	if err := consumeBody(resp, consumer, &envelope); err != nil {
		return nil, err
	}
	if envelope.User == nil {
		return nil, domain.NewError(domain.ErrNotFound, "user not found")
	}
	if err := envelope.User.Validate(c.formats); err != nil {
		return nil, err
	}
	return envelope.User.toDomain(), nil
}
