package entity

import "time"

// Session la identidad autenticada activa: token opaco emitido por la
// plataforma y usuario que lo obtuvo. Existe a lo sumo una por proceso,
// propiedad exclusiva del SessionBroker.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
}

// Valid indica si la sesión tiene token utilizable.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}
