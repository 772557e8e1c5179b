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

import (
	"fmt"

	"github.com/spf13/pflag"
)

type PluginType int

const (
	PluginTypeMetadata PluginType = iota
)

// PluginTypeName returns a human-readable name for a plugin type
func PluginTypeName(pluginType PluginType) string {
	switch pluginType {
	case PluginTypeMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

type PluginOptionType int

const (
	PluginOptionTypeString PluginOptionType = iota
	PluginOptionTypeBool
	PluginOptionTypeInt
	PluginOptionTypeUint
)

// PluginOption describes a single configurable option for a plugin. Dest
// must be a pointer to a variable of the type matching Type; cmdline and
// programmatic overrides write through it.
type PluginOption struct {
	Dest         any
	DefaultValue any
	Name         string
	Description  string
	Type         PluginOptionType
}

// PluginEntry describes a plugin in the registry
type PluginEntry struct {
	NewFromOptionsFunc func() Plugin
	Name               string
	Description        string
	Options            []PluginOption
	Type               PluginType
}

var pluginEntries []PluginEntry

// Register adds a plugin entry to the registry. It's expected to be called
// from an init() function in each plugin package.
func Register(entry PluginEntry) {
	pluginEntries = append(pluginEntries, entry)
}

// GetPlugins returns the registry entries for a particular plugin type
func GetPlugins(pluginType PluginType) []PluginEntry {
	ret := []PluginEntry{}
	for _, entry := range pluginEntries {
		if entry.Type == pluginType {
			ret = append(ret, entry)
		}
	}
	return ret
}

// GetPlugin instantiates the named plugin using its current option values,
// or returns nil if no such plugin is registered
func GetPlugin(pluginType PluginType, pluginName string) Plugin {
	for _, entry := range pluginEntries {
		if entry.Type == pluginType && entry.Name == pluginName {
			return entry.NewFromOptionsFunc()
		}
	}
	return nil
}

// PopulateCmdlineOptions adds a flag for each registered plugin option,
// named '<plugin>-<option>', writing parsed values through to the option
// destination
func PopulateCmdlineOptions(flags *pflag.FlagSet) error {
	for _, entry := range pluginEntries {
		for _, opt := range entry.Options {
			flagName := fmt.Sprintf("%s-%s", entry.Name, opt.Name)
			if opt.Dest == nil {
				return fmt.Errorf(
					"nil destination for option %s",
					flagName,
				)
			}
			switch opt.Type {
			case PluginOptionTypeString:
				dest, ok := opt.Dest.(*string)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(string)
				flags.StringVar(dest, flagName, defaultValue, opt.Description)
			case PluginOptionTypeBool:
				dest, ok := opt.Dest.(*bool)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(bool)
				flags.BoolVar(dest, flagName, defaultValue, opt.Description)
			case PluginOptionTypeInt:
				dest, ok := opt.Dest.(*int)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(int)
				flags.IntVar(dest, flagName, defaultValue, opt.Description)
			case PluginOptionTypeUint:
				dest, ok := opt.Dest.(*uint)
				if !ok {
					return fmt.Errorf(
						"invalid destination type for option %s",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(uint)
				flags.UintVar(dest, flagName, defaultValue, opt.Description)
			default:
				return fmt.Errorf(
					"unknown option type for option %s",
					flagName,
				)
			}
		}
	}
	return nil
}
