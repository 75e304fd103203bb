package api

import (
	"github.com/caarlos0/env/v11"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"
)

const EnvPrefix = "ONPREM_SIM_"

// EnvOverrides are the config keys that can be set from the environment, e.g. ONPREM_SIM_CIDR_MASK=26.
// Values set here take precedence over the config file.
type EnvOverrides struct {
	StackName string `env:"STACK_NAME"`
	Region    string `env:"REGION"`
	Prefix    string `env:"PREFIX"`
	CIDR      string `env:"CIDR"`
	CIDRMask  int    `env:"CIDR_MASK"`
}

func EnvOverridesFromEnvironment() (EnvOverrides, error) {
	o := EnvOverrides{}
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return o, errors.Wrap(err, "failed to parse environment overrides")
	}
	return o, nil
}

func (c *Config) ApplyOverrides(o EnvOverrides) error {
	src := Config{
		StackName: o.StackName,
		Region:    RegionForName(o.Region),
		Prefix:    o.Prefix,
		CIDR:      o.CIDR,
		CIDRMask:  o.CIDRMask,
	}
	if err := mergo.Merge(c, src, mergo.WithOverride); err != nil {
		return errors.Wrap(err, "failed to apply environment overrides")
	}
	return nil
}
