package domain

import "time"

// swagger:model domain.Vehicle
type Vehicle struct {
	ID                 int64     `json:"id"`
	Marque             string    `json:"marque" validate:"required,max=100"`
	Modele             string    `json:"modele" validate:"required,max=100"`
	Annee              int       `json:"annee" validate:"required,min=1900"`
	NumImmatriculation string    `json:"num_immatriculation" validate:"required,max=32"`
	Kilometrage        int       `json:"kilometrage" validate:"min=0"`
	ProprietaireID     int64     `json:"proprietaire_id" validate:"required,gt=0"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Label renders the vehicle the way notification mails refer to it.
func (v *Vehicle) Label() string {
	return v.Marque + " " + v.Modele
}
