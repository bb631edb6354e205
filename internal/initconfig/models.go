// filepath: internal/initconfig/models.go
package initconfig

// InitConfig is the root struct for parsing the initialization file.
type InitConfig struct {
	Users  []InitUser  `toml:"user" yaml:"users"`
	Shares []InitShare `toml:"share" yaml:"shares"`
}

// InitUser represents a user entry in the init file.
type InitUser struct {
	Name        string   `toml:"name" yaml:"name"`
	Email       string   `toml:"email" yaml:"email"`
	Role        string   `toml:"role" yaml:"role"`
	Permissions []string `toml:"permissions" yaml:"permissions"`
	Password    string   `toml:"password" yaml:"password"`
}

// InitShare represents a share entry in the init file.
type InitShare struct {
	Name         string   `toml:"name" yaml:"name"`
	Path         string   `toml:"path" yaml:"path"`
	Description  string   `toml:"description" yaml:"description"`
	Public       bool     `toml:"public" yaml:"public"`
	AllowedUsers []string `toml:"allowed_users" yaml:"allowed_users"`
	ReadOnly     bool     `toml:"read_only" yaml:"read_only"`
}
