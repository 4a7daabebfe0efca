package directory

import (
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	oaierrors "github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// userPayload mirrors the user service representation of a user.
type userPayload struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Address   *string         `json:"address,omitempty"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	CreatedAt strfmt.DateTime `json:"created_at,omitempty"`
	UpdatedAt strfmt.DateTime `json:"updated_at,omitempty"`
}

func (m *userPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("user.id", "body", m.ID); err != nil {
		res = append(res, err)
	}
	if err := validate.RequiredString("user.email", "body", m.Email); err != nil {
		res = append(res, err)
	} else if err := validate.FormatOf("user.email", "body", "email", m.Email, formats); err != nil {
		res = append(res, err)
	}
	if err := validate.EnumCase("user.role", "body", m.Role, []interface{}{string(domain.RoleClient), string(domain.RoleMechanic)}, true); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return oaierrors.CompositeValidationError(res...)
	}
	return nil
}

func (m *userPayload) toDomain() *domain.User {
	return &domain.User{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Address:   swag.StringValue(m.Address),
		Email:     m.Email,
		Role:      domain.UserRole(m.Role),
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

type userEnvelope struct {
	Message string       `json:"message"`
	User    *userPayload `json:"user"`
}

type usersEnvelope struct {
	Message string         `json:"message"`
	Users   []*userPayload `json:"users"`
}

// vehiclePayload mirrors the vehicle service representation of a vehicle.
type vehiclePayload struct {
	ID                 int64           `json:"id"`
	Marque             string          `json:"marque"`
	Modele             string          `json:"modele"`
	Annee              int64           `json:"annee"`
	NumImmatriculation string          `json:"num_immatriculation"`
	Kilometrage        *int64          `json:"kilometrage,omitempty"`
	ProprietaireID     int64           `json:"proprietaire_id"`
	CreatedAt          strfmt.DateTime `json:"created_at,omitempty"`
	UpdatedAt          strfmt.DateTime `json:"updated_at,omitempty"`
}

func (m *vehiclePayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("vehicule.id", "body", m.ID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("vehicule.proprietaire_id", "body", m.ProprietaireID); err != nil {
		res = append(res, err)
	}
	if m.Annee != 0 {
		if err := validate.MinimumInt("vehicule.annee", "body", m.Annee, 1900, false); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return oaierrors.CompositeValidationError(res...)
	}
	return nil
}

func (m *vehiclePayload) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 m.ID,
		Marque:             m.Marque,
		Modele:             m.Modele,
		Annee:              int(m.Annee),
		NumImmatriculation: m.NumImmatriculation,
		Kilometrage:        int(swag.Int64Value(m.Kilometrage)),
		ProprietaireID:     m.ProprietaireID,
		CreatedAt:          time.Time(m.CreatedAt),
		UpdatedAt:          time.Time(m.UpdatedAt),
	}
}

type vehicleEnvelope struct {
	Message string          `json:"message"`
	Vehicle *vehiclePayload `json:"vehicule"`
}
