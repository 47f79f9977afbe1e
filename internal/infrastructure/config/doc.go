// Package config loads and validates Gray Logic Edge configuration.
//
// Configuration comes from three layers, later layers overriding earlier
// ones: hardcoded defaults, the YAML config file, and GRAYEDGE_* environment
// variables. The hardware manifest itself lives in a separate file (see the
// manifest package); this package only carries its path.
package config
