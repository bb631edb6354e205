// filepath: internal/repository/settings_repo.go
package repository

import (
	"context"
	"flexnas/internal/models"

	"github.com/Masterminds/squirrel"
)

// Each settings table holds one logical record under models.SettingsKey.
// Writes use REPLACE so the stored row is always the last full record written.

// GetSystemSettings returns the stored system record or ErrNotFound.
func (s *Repository) GetSystemSettings(ctx context.Context) (*models.SystemSettings, error) {
	query, args, err := s.Builder.
		Select("hostname", "timezone", "enable_updates", "enable_ssh", "ssh_port", "updated_at").
		From("system_settings").
		Where(squirrel.Eq{"key": models.SettingsKey}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var (
		st        models.SystemSettings
		updatedAt int64
	)
	err = s.DB.QueryRowContext(ctx, query, args...).
		Scan(&st.Hostname, &st.Timezone, &st.EnableAutomaticUpdates, &st.EnableSSH, &st.SSHPort, &updatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	ts := unixToTime(updatedAt)
	st.UpdatedAt = &ts
	return &st, nil
}

// PutSystemSettings replaces the system record.
func (s *Repository) PutSystemSettings(ctx context.Context, st *models.SystemSettings) error {
	now := s.timestamp()
	query, args, err := s.Builder.Replace("system_settings").
		Columns("key", "hostname", "timezone", "enable_updates", "enable_ssh", "ssh_port", "updated_at").
		Values(models.SettingsKey, st.Hostname, st.Timezone, st.EnableAutomaticUpdates, st.EnableSSH, st.SSHPort, now).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return translateError(err)
	}
	ts := unixToTime(now)
	st.UpdatedAt = &ts
	return nil
}

// GetNetworkSettings returns the stored network record or ErrNotFound.
func (s *Repository) GetNetworkSettings(ctx context.Context) (*models.NetworkSettings, error) {
	query, args, err := s.Builder.
		Select("hostname", "domain", "ip_address", "subnet_mask", "gateway", "dns_servers", "dhcp_enabled", "updated_at").
		From("network_settings").
		Where(squirrel.Eq{"key": models.SettingsKey}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var (
		ns        models.NetworkSettings
		dns       string
		updatedAt int64
	)
	err = s.DB.QueryRowContext(ctx, query, args...).
		Scan(&ns.Hostname, &ns.Domain, &ns.IPAddress, &ns.SubnetMask, &ns.Gateway, &dns, &ns.DHCPEnabled, &updatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	if ns.DNSServers, err = decodeStringList(dns); err != nil {
		return nil, err
	}
	ts := unixToTime(updatedAt)
	ns.UpdatedAt = &ts
	return &ns, nil
}

// PutNetworkSettings replaces the network record.
func (s *Repository) PutNetworkSettings(ctx context.Context, ns *models.NetworkSettings) error {
	dns, err := encodeStringList(ns.DNSServers)
	if err != nil {
		return err
	}
	now := s.timestamp()
	query, args, err := s.Builder.Replace("network_settings").
		Columns("key", "hostname", "domain", "ip_address", "subnet_mask", "gateway", "dns_servers", "dhcp_enabled", "updated_at").
		Values(models.SettingsKey, ns.Hostname, ns.Domain, ns.IPAddress, ns.SubnetMask, ns.Gateway, dns, ns.DHCPEnabled, now).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return translateError(err)
	}
	if ns.DNSServers == nil {
		ns.DNSServers = []string{}
	}
	ts := unixToTime(now)
	ns.UpdatedAt = &ts
	return nil
}

// GetStorageSettings returns the stored storage record or ErrNotFound.
func (s *Repository) GetStorageSettings(ctx context.Context) (*models.StorageSettings, error) {
	query, args, err := s.Builder.
		Select("raid_level", "auto_repair", "smart_monitoring", "automated_backups", "backup_schedule", "updated_at").
		From("storage_settings").
		Where(squirrel.Eq{"key": models.SettingsKey}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var (
		st        models.StorageSettings
		updatedAt int64
	)
	err = s.DB.QueryRowContext(ctx, query, args...).
		Scan(&st.RAIDLevel, &st.EnableAutoRaidRepair, &st.EnableSmartMonitoring, &st.EnableAutomatedBackups, &st.BackupSchedule, &updatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	ts := unixToTime(updatedAt)
	st.UpdatedAt = &ts
	return &st, nil
}

// PutStorageSettings replaces the storage record.
func (s *Repository) PutStorageSettings(ctx context.Context, st *models.StorageSettings) error {
	now := s.timestamp()
	query, args, err := s.Builder.Replace("storage_settings").
		Columns("key", "raid_level", "auto_repair", "smart_monitoring", "automated_backups", "backup_schedule", "updated_at").
		Values(models.SettingsKey, st.RAIDLevel, st.EnableAutoRaidRepair, st.EnableSmartMonitoring, st.EnableAutomatedBackups, st.BackupSchedule, now).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return translateError(err)
	}
	ts := unixToTime(now)
	st.UpdatedAt = &ts
	return nil
}
