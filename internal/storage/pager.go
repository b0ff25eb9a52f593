package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tuannm99/pagesql/internal/catalog"
)

// Options tunes the file layout. The zero value means defaults.
type Options struct {
	// HeaderPages is the number of pages reserved for the catalog before the
	// data region. Files must be reopened with the value they were created with.
	HeaderPages int
}

func (o Options) headerPages() int {
	if o.HeaderPages <= 0 {
		return DefaultHeaderPages
	}
	return o.HeaderPages
}

// DataStart is the byte offset of page 0 of the data region.
func (o Options) DataStart() int64 {
	return int64(o.headerPages()) * PageSize
}

// CatalogCapacity is how many schemas fit in the header region.
func (o Options) CatalogCapacity() int {
	return catalog.CapacityFor(int(o.DataStart()))
}

// Stats counts page cache activity for the session.
type Stats struct {
	Faults    int // cache misses
	DiskReads int // misses served from disk
}

// Pager owns the database file, a bounded array of page slots and the catalog.
//
// File layout:
//
//	[u32 schema count][schema records...]  padded up to DataStart
//	[page 0][page 1]...                    PageSize each, last one may be partial
type Pager struct {
	file       *os.File
	path       string
	fileLength int64
	dataStart  int64
	pages      [MaxPages]*Page
	catalog    *catalog.Catalog
	stats      Stats
	closed     bool
}

// Open opens or creates the database file and loads its catalog.
func Open(path string, opts Options) (*Pager, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, FileMode0600)
	if err != nil {
		return nil, fmt.Errorf("open database file: %w", err)
	}

	fi, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: stat: %w", ErrStorageIO, err)
	}

	p := &Pager{
		file:       file,
		path:       path,
		fileLength: fi.Size(),
		dataStart:  opts.DataStart(),
	}

	capacity := opts.CatalogCapacity()
	if p.fileLength >= catalog.HeaderSize {
		cat, err := catalog.Load(io.NewSectionReader(file, 0, p.dataStart), capacity)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		p.catalog = cat
	} else {
		p.catalog = catalog.New(capacity)
	}

	slog.Debug("pager: open",
		"path", path,
		"file_length", p.fileLength,
		"data_start", p.dataStart,
		"schemas", p.catalog.Len(),
	)
	return p, nil
}

func (p *Pager) Catalog() *catalog.Catalog { return p.catalog }
func (p *Pager) Path() string              { return p.path }
func (p *Pager) FileLength() int64         { return p.fileLength }
func (p *Pager) DataStart() int64          { return p.dataStart }
func (p *Pager) Stats() Stats              { return p.stats }

// DataLength is the number of bytes currently stored in the data region.
func (p *Pager) DataLength() int64 {
	return max(p.fileLength-p.dataStart, 0)
}

// PagesOnDisk counts data pages present in the file, a partial last page included.
func (p *Pager) PagesOnDisk() uint32 {
	dl := p.DataLength()
	n := dl / PageSize
	if dl%PageSize != 0 {
		n++
	}
	return uint32(n)
}

// GetPage returns the cached buffer for page n, faulting it in on first use.
func (p *Pager) GetPage(n uint32) (*Page, error) {
	if p.closed {
		return nil, ErrPagerClosed
	}
	if n >= MaxPages {
		return nil, fmt.Errorf("%w: %d >= %d", ErrPageOutOfBounds, n, MaxPages)
	}
	if pg := p.pages[n]; pg != nil {
		return pg, nil
	}

	p.stats.Faults++
	pg := &Page{num: n}

	if n < p.PagesOnDisk() {
		off := p.dataStart + int64(n)*PageSize
		read, err := p.file.ReadAt(pg.buf[:], off)
		// the last page may be partial; the rest of the buffer stays zero
		if err != nil && !(errors.Is(err, io.EOF) && read > 0) {
			return nil, fmt.Errorf("%w: page %d at offset %d: %w", ErrShortRead, n, off, err)
		}
		p.stats.DiskReads++
		slog.Debug("pager: page fault", "page", n, "bytes", read)
	}

	p.pages[n] = pg
	return pg, nil
}

// Flush writes the first size bytes of page n to disk. Pages that were
// never faulted in are skipped.
func (p *Pager) Flush(n uint32, size int) error {
	if p.closed {
		return ErrPagerClosed
	}
	if n >= MaxPages {
		return fmt.Errorf("%w: %d >= %d", ErrPageOutOfBounds, n, MaxPages)
	}
	if size < 0 || size > PageSize {
		return fmt.Errorf("%w: %d", ErrBadFlushSize, size)
	}

	pg := p.pages[n]
	if pg == nil {
		return nil
	}

	off := p.dataStart + int64(n)*PageSize
	if err := p.writeAt(pg.buf[:size], off); err != nil {
		return fmt.Errorf("flush page %d: %w", n, err)
	}
	pg.dirty = false
	return nil
}

// FlushCatalog rewrites the schema count and every schema record at the head of the file.
func (p *Pager) FlushCatalog() error {
	if p.closed {
		return ErrPagerClosed
	}

	buf, err := p.catalog.MarshalBinary()
	if err != nil {
		return err
	}
	if int64(len(buf)) > p.dataStart {
		return fmt.Errorf("%w: %d > %d bytes", ErrCatalogTooLarge, len(buf), p.dataStart)
	}

	if err := p.writeAt(buf, 0); err != nil {
		return fmt.Errorf("flush catalog: %w", err)
	}
	slog.Debug("pager: catalog flushed", "schemas", p.catalog.Len(), "bytes", len(buf))
	return nil
}

// Close persists the catalog and the rows of the primary table, then
// releases every page and the file. rowCount is the primary table's row count.
func (p *Pager) Close(rowCount uint32) error {
	if p.closed {
		return ErrPagerClosed
	}

	err := p.FlushCatalog()
	if err == nil {
		err = p.flushRows(rowCount)
	}

	for i := range p.pages {
		p.pages[i] = nil
	}
	p.closed = true

	if cerr := p.file.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("%w: close: %w", ErrStorageIO, cerr))
	}
	return err
}

func (p *Pager) flushRows(rowCount uint32) error {
	primary, ok := p.catalog.Primary()
	if !ok {
		return nil
	}
	rpp := RowsPerPage(primary.RowSize)
	if rpp == 0 {
		return nil
	}

	fullPages := rowCount / rpp
	for i := uint32(0); i < fullPages; i++ {
		if pg := p.pages[i]; pg == nil || !pg.dirty {
			continue
		}
		if err := p.Flush(i, PageSize); err != nil {
			return err
		}
	}

	// only the valid rows of a trailing partial page hit the disk
	if extra := rowCount % rpp; extra > 0 {
		if pg := p.pages[fullPages]; pg != nil && pg.dirty {
			if err := p.Flush(fullPages, int(extra*primary.RowSize)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Pager) writeAt(b []byte, off int64) error {
	n, err := p.file.WriteAt(b, off)
	if err != nil {
		return fmt.Errorf("%w: wrote %d of %d bytes at %d: %w", ErrShortWrite, n, len(b), off, err)
	}
	if end := off + int64(n); end > p.fileLength {
		p.fileLength = end
	}
	return nil
}
