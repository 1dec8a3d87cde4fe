package nodes

import (
	"github.com/cube2222/regexp-extract/execution"
)

// InMemoryRecords produces preloaded records, one after another.
type InMemoryRecords struct {
	Records []execution.Record
}

func NewInMemoryRecords(records []execution.Record) *InMemoryRecords {
	return &InMemoryRecords{
		Records: records,
	}
}

func (r *InMemoryRecords) Run(ctx execution.Context, produce execution.ProduceFunc) error {
	for i := range r.Records {
		if err := produce(execution.ProduceContext{Context: ctx}, r.Records[i]); err != nil {
			return err
		}
	}
	return nil
}
