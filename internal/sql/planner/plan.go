package planner

import (
	"github.com/tuannm99/pagesql/internal/record"
)

// Plan is a statement bound against the catalog and ready to execute.
type Plan interface {
	planNode()
}

// CreateTablePlan holds resolved columns; names and limits are checked
// when the catalog accepts the table.
type CreateTablePlan struct {
	TableName string
	Columns   []record.Column
}

func (*CreateTablePlan) planNode() {}

// InsertPlan carries a fully encoded row.
type InsertPlan struct {
	Table *record.TableSchema
	Row   record.Row
}

func (*InsertPlan) planNode() {}

type SeqScanPlan struct {
	Table *record.TableSchema
}

func (*SeqScanPlan) planNode() {}

// NoopPlan stands in for recognized statements that have no effect yet.
type NoopPlan struct {
	Keyword string
}

func (*NoopPlan) planNode() {}
