// Package console is the operator-facing I/O used by every command: yes/no
// confirmations, free-text and multiple-choice questions, styled status
// blocks and tables.
//
// Prompts never return errors. When the IO is non-interactive (--no-interaction)
// or input reaches EOF, each prompt resolves to its default so commands can be
// scripted. Ctrl-C at a terminal prompt aborts the process with exit code 130.
package console
