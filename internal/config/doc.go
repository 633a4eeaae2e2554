// Package config holds the fixed selectors, labels and button style used to
// read a Fullcast job detail page.
//
// Defaults are built once by Default and never mutated afterwards. Load layers
// an optional TOML file on top of the defaults so a selector can be patched
// after the host page's markup drifts, and LoadEnv reads credentials for the
// Telegram presenter from the environment or a .env file.
package config
