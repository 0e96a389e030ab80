package request

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

type Login struct {
	Username string `validate:"required"       json:"username"`
	Password string `validate:"required,min=8" json:"password"`
}

func (l Login) MarshalZerologObject(e *zerolog.Event) {
	e.Str("username", l.Username).Str("password", "***")
}

func (l Login) MarshalJSON() ([]byte, error) {
	l.Password = "***"
	type L Login
	return json.Marshal(L(l))
}

type ChangePassword struct {
	OldPassword string `validate:"required"       json:"old_password"`
	NewPassword string `validate:"required,min=8" json:"new_password"`
}

func (p ChangePassword) MarshalZerologObject(e *zerolog.Event) {
	e.Str("old_password", "***").Str("new_password", "***")
}

func (p ChangePassword) MarshalJSON() ([]byte, error) {
	p.OldPassword = "***"
	p.NewPassword = "***"
	type P ChangePassword
	return json.Marshal(P(p))
}
