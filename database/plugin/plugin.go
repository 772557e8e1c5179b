// Copyright 2026 OpenConsent Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plugin

import "fmt"

type Plugin interface {
	Start() error
	Stop() error
}

// ErrorPlugin is a plugin that always returns an error on Start()
type ErrorPlugin struct {
	Err error
}

func (e *ErrorPlugin) Start() error {
	return e.Err
}

func (e *ErrorPlugin) Stop() error {
	return nil
}

// NewErrorPlugin creates a new error plugin that returns the given error on Start()
func NewErrorPlugin(err error) Plugin {
	return &ErrorPlugin{Err: err}
}

// StartPlugin gets a plugin from the registry and starts it
func StartPlugin(pluginType PluginType, pluginName string) (Plugin, error) {
	p := GetPlugin(pluginType, pluginName)
	if p == nil {
		return nil, fmt.Errorf(
			"%s plugin '%s' not found",
			PluginTypeName(pluginType),
			pluginName,
		)
	}
	if err := p.Start(); err != nil {
		return nil, fmt.Errorf(
			"failed to start %s plugin '%s': %w",
			PluginTypeName(pluginType),
			pluginName,
			err,
		)
	}
	return p, nil
}

// SetPluginOption sets the value of a named option for a plugin entry. This
// is used by callers that need to programmatically override plugin defaults
// (for example to set data-dir before starting a plugin). It returns an error
// if the plugin is not found or if the value type is incompatible. Setting an
// unknown option is a no-op.
// NOTE: This function writes directly to plugin option destinations without
// acquiring the plugin's option mutex. It must be called before any plugin
// instantiation to avoid data races with concurrent reads in
// NewFromCmdlineOptions.
func SetPluginOption(
	pluginType PluginType,
	pluginName string,
	optionName string,
	value any,
) error {
	for i := range pluginEntries {
		p := &pluginEntries[i]
		if p.Type != pluginType || p.Name != pluginName {
			continue
		}
		for _, opt := range p.Options {
			if opt.Name != optionName {
				continue
			}
			if opt.Dest == nil {
				return fmt.Errorf(
					"nil destination for option %s",
					optionName,
				)
			}
			switch opt.Type {
			case PluginOptionTypeString:
				v, ok := value.(string)
				if !ok {
					return fmt.Errorf(
						"invalid type for option %s: expected string",
						optionName,
					)
				}
				dest, ok := opt.Dest.(*string)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s: expected *string",
						optionName,
					)
				}
				*dest = v
				return nil
			case PluginOptionTypeBool:
				v, ok := value.(bool)
				if !ok {
					return fmt.Errorf(
						"invalid type for option %s: expected bool",
						optionName,
					)
				}
				dest, ok := opt.Dest.(*bool)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s: expected *bool",
						optionName,
					)
				}
				*dest = v
				return nil
			case PluginOptionTypeInt:
				v, ok := value.(int)
				if !ok {
					return fmt.Errorf(
						"invalid type for option %s: expected int",
						optionName,
					)
				}
				dest, ok := opt.Dest.(*int)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s: expected *int",
						optionName,
					)
				}
				*dest = v
				return nil
			case PluginOptionTypeUint:
				var v uint
				switch tv := value.(type) {
				case uint:
					v = tv
				case int:
					if tv < 0 {
						return fmt.Errorf(
							"invalid value for option %s: negative int",
							optionName,
						)
					}
					v = uint(tv)
				default:
					return fmt.Errorf(
						"invalid type for option %s: expected uint",
						optionName,
					)
				}
				dest, ok := opt.Dest.(*uint)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s: expected *uint",
						optionName,
					)
				}
				*dest = v
				return nil
			default:
				return fmt.Errorf(
					"unknown option type for option %s",
					optionName,
				)
			}
		}
		// Unknown option names are ignored so that callers can pass
		// options that only some plugins understand
		return nil
	}
	return fmt.Errorf(
		"%s plugin '%s' not found",
		PluginTypeName(pluginType),
		pluginName,
	)
}
