package models

import "time"

// Share is a named, path-bound unit of exposed storage.
type Share struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Description  string    `json:"description"`
	CreatedBy    int64     `json:"createdBy"`
	Creator      string    `json:"creator"`
	CreatedAt    time.Time `json:"createdAt"`
	IsPublic     bool      `json:"isPublic"`
	AllowedUsers []string  `json:"allowedUsers"`
	ReadOnly     bool      `json:"readOnly"`
}

// VisibleTo reports whether u may see the share.
func (s *Share) VisibleTo(u *User) bool {
	if u.IsAdmin() || s.IsPublic {
		return true
	}
	for _, name := range s.AllowedUsers {
		if name == u.Username {
			return true
		}
	}
	return false
}

// SharePayload is the body of share create and update requests.
type SharePayload struct {
	Name         string   `json:"name" validate:"required,max=64,excludes=/"`
	Path         string   `json:"path" validate:"required,startswith=/,max=4096"`
	Description  string   `json:"description" validate:"max=1024"`
	IsPublic     bool     `json:"isPublic"`
	AllowedUsers []string `json:"allowedUsers" validate:"dive,required,max=64"`
	ReadOnly     bool     `json:"readOnly"`
}

// ProtocolShare is a share together with its override inside one protocol's config.
type ProtocolShare struct {
	Share
	ProtocolConfig map[string]interface{} `json:"protocolConfig"`
}

// ProtocolSharePayload is the body of PUT /api/protocols/{name}/shares/{id}.
type ProtocolSharePayload struct {
	ProtocolConfig map[string]interface{} `json:"protocolConfig"`
}
