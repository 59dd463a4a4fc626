// Package internal provides the core of the inclint JavaScript linter.
//
// Engine: parses a source file into an ESTree-shaped tree, runs every enabled
// rule over it concurrently and returns the issues sorted by position.
// Issues silenced by nolint comments are dropped.
//
// LintRule: the contract every rule implements. A rule reports issues and,
// when Fixable, attaches a byte-range fix to each of them.
//
// Cache: remembers the issues of a file for as long as its content is unchanged.
//
// The rules themselves live in the lints package, the fix application in fixer.
package internal
