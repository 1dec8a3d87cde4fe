package execution

import (
	"context"

	"github.com/apache/arrow/go/v13/arrow"
)

// All nodes will try to create batches of approximately this size. Different sizes are allowed.
const IdealBatchSize = 16 * 1024

type Context struct {
	Context context.Context
}

type ProduceContext struct {
	Context
}

type Node interface {
	Run(ctx Context, produce ProduceFunc) error
}

type NodeWithMeta struct {
	Node   Node
	Schema *arrow.Schema
}

type ProduceFunc func(produceCtx ProduceContext, record Record) error

type Record struct {
	arrow.Record
}
