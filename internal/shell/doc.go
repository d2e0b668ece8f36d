// Package shell detects the user's interactive shell and knows how each
// supported shell spells an exported environment variable.
// Detection looks at $SHELL first and falls back to a per-OS default;
// the formatting table maps each syntax to a serializer and a line pattern.
package shell
