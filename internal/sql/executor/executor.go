package executor

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/pagesql/internal/catalog"
	"github.com/tuannm99/pagesql/internal/record"
	"github.com/tuannm99/pagesql/internal/sql/planner"
	"github.com/tuannm99/pagesql/internal/storage"
)

// PageSource is the part of the pager the executor needs.
type PageSource interface {
	Catalog() *catalog.Catalog
	GetPage(n uint32) (*storage.Page, error)
}

// Executor runs plans against the pages of the primary table and tracks its row count.
type Executor struct {
	pages    PageSource
	rowCount uint32
}

func NewExecutor(pages PageSource, rowCount uint32) *Executor {
	return &Executor{pages: pages, rowCount: rowCount}
}

func (e *Executor) RowCount() uint32 { return e.rowCount }

// Addr locates row n of a table with the given row size: the page number and
// the byte offset inside it. Rows never span pages.
func Addr(row, rowSize uint32) (page, offset uint32) {
	rpp := storage.RowsPerPage(rowSize)
	return row / rpp, (row % rpp) * rowSize
}

// Execute runs one plan. A nil error means ExecuteSuccess; otherwise use
// StatusOf to classify it.
func (e *Executor) Execute(p planner.Plan) (*Result, error) {
	switch plan := p.(type) {
	case *planner.CreateTablePlan:
		return e.execCreateTable(plan)
	case *planner.InsertPlan:
		return e.execInsert(plan)
	case *planner.SeqScanPlan:
		return e.execSeqScan(plan)
	case *planner.NoopPlan:
		return &Result{Message: "Operation not implemented yet."}, nil
	default:
		return nil, fmt.Errorf("executor: unsupported plan type %T", p)
	}
}

func (e *Executor) execCreateTable(p *planner.CreateTablePlan) (*Result, error) {
	s, err := e.pages.Catalog().Create(p.TableName, p.Columns)
	if err != nil {
		return nil, fmt.Errorf("executor: create table %q: %w", p.TableName, err)
	}

	slog.Info("executor: table created", "table", s.Name, "columns", s.NumCols(), "row_size", s.RowSize)
	return &Result{
		Message: fmt.Sprintf("Table '%s' created with %d columns.", s.Name, s.NumCols()),
	}, nil
}

// dataTable checks that s owns the data region and that its rows fit a page.
func (e *Executor) dataTable(s *record.TableSchema) (uint32, error) {
	primary, ok := e.pages.Catalog().Primary()
	if !ok || primary.Name != s.Name {
		return 0, fmt.Errorf("%w: %q", ErrNoDataRegion, s.Name)
	}
	rpp := storage.RowsPerPage(s.RowSize)
	if rpp == 0 {
		return 0, fmt.Errorf("%w: %d bytes", ErrRowTooLarge, s.RowSize)
	}
	return rpp, nil
}

func (e *Executor) slot(row uint32, s *record.TableSchema) ([]byte, *storage.Page, error) {
	pageNum, off := Addr(row, s.RowSize)
	pg, err := e.pages.GetPage(pageNum)
	if err != nil {
		return nil, nil, err
	}
	buf, err := pg.Slot(off, s.RowSize)
	if err != nil {
		return nil, nil, err
	}
	return buf, pg, nil
}

func (e *Executor) execInsert(p *planner.InsertPlan) (*Result, error) {
	rpp, err := e.dataTable(p.Table)
	if err != nil {
		return nil, err
	}
	if e.rowCount >= storage.MaxPages*rpp {
		return nil, fmt.Errorf("%w: %d rows", ErrTableFull, e.rowCount)
	}

	buf, pg, err := e.slot(e.rowCount, p.Table)
	if err != nil {
		return nil, err
	}
	if err := record.SerializeRow(p.Row, p.Table, buf); err != nil {
		return nil, err
	}
	pg.MarkDirty()
	e.rowCount++

	return &Result{
		AffectedRows: 1,
		Message:      fmt.Sprintf("Inserted %d values.", len(p.Row.Values)),
	}, nil
}

func (e *Executor) execSeqScan(p *planner.SeqScanPlan) (*Result, error) {
	if _, err := e.dataTable(p.Table); err != nil {
		return nil, err
	}

	res := &Result{Columns: make([]string, 0, p.Table.NumCols())}
	for _, col := range p.Table.Columns {
		res.Columns = append(res.Columns, col.Name)
	}

	res.Rows = make([][]string, 0, e.rowCount)
	for i := uint32(0); i < e.rowCount; i++ {
		buf, _, err := e.slot(i, p.Table)
		if err != nil {
			return nil, err
		}
		row, err := record.DeserializeRow(buf, p.Table)
		if err != nil {
			return nil, err
		}
		res.Rows = append(res.Rows, row.Strings())
	}

	res.AffectedRows = int64(len(res.Rows))
	return res, nil
}
