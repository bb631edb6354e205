package models

// ProtocolSharesKey is the config key holding per-share overrides, keyed by share name.
const ProtocolSharesKey = "shares"

// The structs below describe the known keys of each protocol's config blob.
// They are used to type-check updates; unknown keys are kept as-is.

// SMBConfig lists the known SMB settings.
type SMBConfig struct {
	Workgroup    string `mapstructure:"workgroup" validate:"omitempty,max=15"`
	ServerString string `mapstructure:"server_string" validate:"max=256"`
	NetbiosName  string `mapstructure:"netbios_name" validate:"omitempty,max=15"`
	Security     string `mapstructure:"security" validate:"omitempty,oneof=user ads domain"`
	MapToGuest   string `mapstructure:"map_to_guest"`
	GuestAccount string `mapstructure:"guest_account"`
}

// NFSConfig lists the known NFS settings.
type NFSConfig struct {
	Threads            int    `mapstructure:"threads" validate:"omitempty,min=1,max=256"`
	UDP                bool   `mapstructure:"udp"`
	NFSVersion         string `mapstructure:"nfs_version" validate:"omitempty,oneof=3 4 4.0 4.1 4.2"`
	AllowInsecureLocks bool   `mapstructure:"allow_insecure_locks"`
}

// FTPConfig lists the known FTP settings.
type FTPConfig struct {
	AnonymousEnable bool   `mapstructure:"anonymous_enable"`
	LocalEnable     bool   `mapstructure:"local_enable"`
	WriteEnable     bool   `mapstructure:"write_enable"`
	LocalUmask      string `mapstructure:"local_umask" validate:"omitempty,len=3,numeric"`
	MaxClients      int    `mapstructure:"max_clients" validate:"gte=0"`
	MaxPerIP        int    `mapstructure:"max_per_ip" validate:"gte=0"`
	PassivePortsMin int    `mapstructure:"passive_ports_min" validate:"omitempty,min=1024,max=65535"`
	PassivePortsMax int    `mapstructure:"passive_ports_max" validate:"omitempty,min=1024,max=65535,gtefield=PassivePortsMin"`
}

// WebDAVConfig lists the known WebDAV settings.
type WebDAVConfig struct {
	Authentication string `mapstructure:"authentication" validate:"omitempty,oneof=none basic digest"`
	SSLEnable      bool   `mapstructure:"ssl_enable"`
	DigestAuth     bool   `mapstructure:"digest_auth"`
	CORSAllow      string `mapstructure:"cors_allow"`
}

// ProtocolConfigSchema returns an empty typed config for a protocol name,
// or nil when the protocol has no known schema.
func ProtocolConfigSchema(name string) interface{} {
	switch name {
	case "smb":
		return &SMBConfig{}
	case "nfs":
		return &NFSConfig{}
	case "ftp":
		return &FTPConfig{}
	case "webdav":
		return &WebDAVConfig{}
	}
	return nil
}
