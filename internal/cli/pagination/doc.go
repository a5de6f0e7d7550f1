// Package pagination implements the --limit/--offset, --page/--page-size and
// --sort flags of the record listing commands.
package pagination
