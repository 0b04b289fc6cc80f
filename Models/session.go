package Models

import "strings"

// Session identifies who is filling checklists. It is created at login and
// travels with every request instead of living in process-wide state.
type Session struct {
	Observer   string `json:"observador"`
	Supervisor string `json:"supervisor"`
}

// NewSession trims both names and requires them to be present.
func NewSession(observer, supervisor string) (*Session, error) {
	s := &Session{
		Observer:   strings.TrimSpace(observer),
		Supervisor: strings.TrimSpace(supervisor),
	}
	if s.Observer == "" || s.Supervisor == "" {
		return nil, &ValidationError{Fields: map[string]string{
			"login": "Por favor, preencha todos os campos.",
		}}
	}
	return s, nil
}
