// Package cmd implements the sigil subcommands.
//
// Each command is a kong-bound struct whose Run method drives the core
// operations in [github.com/ardnew/sigil/lang]: resolve expands an
// expression against the effective registry, fmt reprints a parsed
// expression without resolving, init writes a starter schema file, and
// repl runs an interactive resolve loop.
//
// Commands receive their [kong.Context] through [context.Context] via
// [WithContext], which the CLI driver installs before dispatch.
package cmd
