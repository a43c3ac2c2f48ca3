// Package app contains the core application logic. It defines the main App
// struct, its configuration and the layering of flags, config file and
// defaults, and the primary execution lifecycle, decoupled from any specific
// entrypoint like a CLI.
package app
