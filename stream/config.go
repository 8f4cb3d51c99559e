/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package stream

const defaultServiceName = "example.com"

// Config represents a mocked connection configuration.
type Config struct {
	ServiceName string
}

type configProxy struct {
	ServiceName string `yaml:"service_name"`
}

// UnmarshalYAML satisfies Unmarshaler interface.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p := configProxy{}
	if err := unmarshal(&p); err != nil {
		return err
	}
	c.ServiceName = p.ServiceName
	if len(c.ServiceName) == 0 {
		c.ServiceName = defaultServiceName
	}
	return nil
}
