package storage

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/dustin/go-humanize"

	"github.com/tuannm99/pagesql/internal/catalog"
	"github.com/tuannm99/pagesql/internal/record"
)

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Fprintf(format string, a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

func (e *errWriter) Fprintln(a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, a...)
}

// ASCII preview: printable -> itself, else '.'
func asciiPreview(b []byte) string {
	var buf bytes.Buffer
	for _, c := range b {
		r := rune(c)
		if r < unicode.MaxASCII && unicode.IsPrint(r) {
			buf.WriteRune(r)
		} else {
			buf.WriteByte('.')
		}
	}
	return buf.String()
}

// Debug prints a hex/ascii preview of the first rows slots of the page.
func (p *Page) Debug(w io.Writer, rowSize uint32, rows uint32) error {
	ew := &errWriter{w: w}

	rpp := RowsPerPage(rowSize)
	ew.Fprintf("=== Page %d ===\n", p.num)
	ew.Fprintf("rowSize=%d rowsPerPage=%d rows=%d dirty=%v\n", rowSize, rpp, rows, p.dirty)

	const maxPreview = 32
	for i := uint32(0); i < min(rows, rpp) && ew.err == nil; i++ {
		slot, err := p.Slot(i*rowSize, rowSize)
		if err != nil {
			ew.Fprintf("[%d] <error: %v>\n", i, err)
			continue
		}
		preview := slot[:min(len(slot), maxPreview)]
		ew.Fprintf("[%d] off=%d hex=%s ascii=%q\n",
			i, i*rowSize, hex.EncodeToString(preview), asciiPreview(preview))
	}
	return ew.err
}

// Layout is a read-only summary of a database file.
type Layout struct {
	Path        string
	FileLength  int64
	DataStart   int64
	DataLength  int64
	PagesOnDisk uint32
	Schemas     []record.TableSchema
	RowCount    uint32 // rows of the primary table
}

// Inspect reads the header and catalog of a database file without modifying it.
func Inspect(path string, opts Options) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database file: %w", err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat: %w", ErrStorageIO, err)
	}

	l := &Layout{
		Path:       path,
		FileLength: fi.Size(),
		DataStart:  opts.DataStart(),
	}
	l.DataLength = max(l.FileLength-l.DataStart, 0)
	l.PagesOnDisk = uint32((l.DataLength + PageSize - 1) / PageSize)

	if l.FileLength >= catalog.HeaderSize {
		cat, err := catalog.Load(io.NewSectionReader(f, 0, l.DataStart), opts.CatalogCapacity())
		if err != nil {
			return nil, err
		}
		l.Schemas = cat.All()
	}
	if len(l.Schemas) > 0 {
		l.RowCount = RowCount(l.DataLength, l.Schemas[0].RowSize)
	}
	return l, nil
}

// Print writes a human readable description of the layout.
func (l *Layout) Print(w io.Writer) error {
	ew := &errWriter{w: w}

	ew.Fprintf("file:        %s (%s)\n", l.Path, humanize.IBytes(uint64(l.FileLength)))
	ew.Fprintf("data region: offset %d, %s in %d page(s) of %s\n",
		l.DataStart, humanize.IBytes(uint64(l.DataLength)), l.PagesOnDisk, humanize.IBytes(PageSize))
	ew.Fprintf("schemas:     %d\n", len(l.Schemas))

	for i, s := range l.Schemas {
		ew.Fprintf("\n[%d] %s (row size %d bytes", i, s.Name, s.RowSize)
		if i == 0 {
			rpp := RowsPerPage(s.RowSize)
			ew.Fprintf(", %d rows/page, %d of %s rows", rpp, l.RowCount, humanize.Comma(int64(MaxRows(s.RowSize))))
		}
		ew.Fprintln(")")
		for _, c := range s.Columns {
			ew.Fprintf("    %-31s %-6s %3d\n", c.Name, c.Type, c.Size)
		}
	}
	return ew.err
}
