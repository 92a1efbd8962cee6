package main

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const defaultRefresh = 6 * time.Hour

type configuration struct {
	Token    string   `json:"token"`
	LogLevel string   `json:"logLevel"`
	Refresh  duration `json:"refresh"`
	// Documents are file paths or URLs of notation documents.
	Documents []string `json:"documents"`
	// Aliases map a short name to the start of a /model query.
	Aliases     map[string]string  `json:"aliases"`
	Permissions commandPermissions `json:"permissions"`
	Ignored     snowflakeLookup    `json:"ignored"`
}

type commandPermissions struct {
	// Hide holds roles allowed to hide anyone's lookup.
	Hide snowflakeLookup `json:"hide"`
	// Config holds, per guild, roles that are never ignored.
	Config map[discord.GuildID]snowflakeLookup `json:"config"`
}

type snowflakeLookup map[discord.Snowflake]struct{}

func (l snowflakeLookup) MarshalJSON() ([]byte, error) {
	ids := make([]discord.Snowflake, 0, len(l))
	for id := range l {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return json.Marshal(strs)
}

func (l *snowflakeLookup) UnmarshalJSON(b []byte) error {
	var strs []string
	if err := json.Unmarshal(b, &strs); err != nil {
		return err
	}
	if *l == nil {
		*l = make(snowflakeLookup, len(strs))
	}
	for _, s := range strs {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid snowflake %q", s)
		}
		(*l)[discord.Snowflake(id)] = struct{}{}
	}
	return nil
}

type duration time.Duration

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

func loadConfig(path string) (configuration, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return configuration{}, errors.Wrap(err, "could not open config")
	}
	return configFromBytes(fileBytes)
}

// configFromBytes decodes the config file. Scalar settings may be
// overridden by DRLIT_ environment variables, e.g. DRLIT_TOKEN.
func configFromBytes(fileBytes []byte) (configuration, error) {
	cfg := configuration{
		Permissions: commandPermissions{
			Hide:   snowflakeLookup{},
			Config: map[discord.GuildID]snowflakeLookup{},
		},
		Aliases: map[string]string{},
		Ignored: snowflakeLookup{},
	}
	if err := json.Unmarshal(fileBytes, &cfg); err != nil {
		return cfg, errors.Wrap(err, "could not parse config")
	}
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]string{}
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("DRLIT")
	v.AutomaticEnv()
	v.SetDefault("loglevel", "info")
	v.SetDefault("refresh", defaultRefresh.String())
	v.SetDefault("documents", []string{})
	if err := v.ReadConfig(bytes.NewReader(fileBytes)); err != nil {
		return cfg, errors.Wrap(err, "could not read config")
	}

	cfg.Token = v.GetString("token")
	cfg.LogLevel = v.GetString("loglevel")
	cfg.Refresh = duration(v.GetDuration("refresh"))
	cfg.Documents = v.GetStringSlice("documents")
	if cfg.Refresh <= 0 {
		cfg.Refresh = duration(defaultRefresh)
	}
	return cfg, nil
}

func saveConfig(path string, cfg configuration) error {
	data, err := json.MarshalIndent(cfg, "", "\t")
	if err != nil {
		return errors.Wrap(err, "could not encode config")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return errors.Wrap(err, "could not write config")
	}
	return nil
}
