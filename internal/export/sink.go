package export

import "context"

// Sink persists one named extract. Write is all-or-nothing: on error no
// artifact for that name exists. It returns the local path of the written
// artifact so decorating sinks can forward it.
type Sink interface {
	Write(ctx context.Context, name string, table *Table) (string, error)
}
