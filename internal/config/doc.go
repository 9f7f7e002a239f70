// Package config provides configuration management for doclink.
//
// Configuration comes from three layers, lowest priority first:
//
//  1. Hard-coded defaults that reproduce the original checker's behavior
//     (root "docs", href/src attributes, http/mailto:/#/data: prefixes)
//  2. The optional .doclink YAML file, discovered in the working directory
//     or the user's home directory
//  3. CLI flags
//
// Design decision: the defaults are exported constants so that exposing them
// as flags never changes default behavior. Running doclink with no arguments
// and no config file is byte-for-byte the original contract.
package config
