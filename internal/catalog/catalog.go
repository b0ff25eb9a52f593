package catalog

import (
	"errors"
	"fmt"
	"io"

	"github.com/tuannm99/pagesql/internal/alias/bx"
	"github.com/tuannm99/pagesql/internal/record"
)

const (
	// MaxTables is the hard limit of schema records a file may declare.
	MaxTables = 100
	// HeaderSize is the u32 schema count that precedes the records.
	HeaderSize = 4
)

var (
	ErrDuplicateTable   = errors.New("catalog: table already exists")
	ErrCapacityExceeded = errors.New("catalog: capacity exceeded")
	ErrCorruptCatalog   = errors.New("catalog: corrupt header")
)

// Catalog is the ordered, append-only list of table schemas.
// Tables are never dropped, so an index into All() is stable.
type Catalog struct {
	schemas  []*record.TableSchema
	capacity int
}

// New returns an empty catalog able to hold capacity schemas (clamped to MaxTables).
func New(capacity int) *Catalog {
	if capacity > MaxTables {
		capacity = MaxTables
	}
	if capacity < 0 {
		capacity = 0
	}
	return &Catalog{capacity: capacity}
}

// CapacityFor is how many schema records fit in a header region of regionSize bytes.
func CapacityFor(regionSize int) int {
	n := (regionSize - HeaderSize) / record.SchemaRecordSize
	if n < 0 {
		return 0
	}
	return min(n, MaxTables)
}

func (c *Catalog) Len() int      { return len(c.schemas) }
func (c *Catalog) Capacity() int { return c.capacity }

// Create appends a new table schema.
func (c *Catalog) Create(name string, cols []record.Column) (*record.TableSchema, error) {
	if _, ok := c.Find(name); ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTable, name)
	}
	if len(c.schemas) >= c.capacity {
		return nil, fmt.Errorf("%w: %d tables", ErrCapacityExceeded, c.capacity)
	}

	s, err := record.NewTableSchema(name, cols)
	if err != nil {
		return nil, err
	}
	c.schemas = append(c.schemas, s)
	return s, nil
}

func (c *Catalog) Find(name string) (*record.TableSchema, bool) {
	for _, s := range c.schemas {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Primary is the first table created; its rows own the data region.
func (c *Catalog) Primary() (*record.TableSchema, bool) {
	if len(c.schemas) == 0 {
		return nil, false
	}
	return c.schemas[0], true
}

// All returns the schemas in creation order.
func (c *Catalog) All() []record.TableSchema {
	out := make([]record.TableSchema, len(c.schemas))
	for i, s := range c.schemas {
		out[i] = *s
	}
	return out
}

// Size is the number of header bytes the catalog occupies on disk.
func (c *Catalog) Size() int {
	return HeaderSize + len(c.schemas)*record.SchemaRecordSize
}

// MarshalBinary encodes [u32 count][count x schema record].
func (c *Catalog) MarshalBinary() ([]byte, error) {
	buf := make([]byte, c.Size())
	bx.PutU32(buf, uint32(len(c.schemas)))
	for i, s := range c.schemas {
		off := HeaderSize + i*record.SchemaRecordSize
		if err := s.MarshalRecord(buf[off:]); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// Load reads a catalog written by MarshalBinary. A declared count above
// capacity cannot be trusted and is reported as ErrCorruptCatalog.
func Load(r io.Reader, capacity int) (*Catalog, error) {
	c := New(capacity)

	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: read schema count: %w", ErrCorruptCatalog, err)
	}

	n := bx.U32(hdr[:])
	if int64(n) > int64(c.capacity) {
		return nil, fmt.Errorf("%w: %d schemas declared, capacity %d", ErrCorruptCatalog, n, c.capacity)
	}

	rec := make([]byte, record.SchemaRecordSize)
	for i := uint32(0); i < n; i++ {
		if _, err := io.ReadFull(r, rec); err != nil {
			return nil, fmt.Errorf("%w: read schema %d: %w", ErrCorruptCatalog, i, err)
		}
		s, err := record.UnmarshalRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: schema %d: %w", ErrCorruptCatalog, i, err)
		}
		if _, dup := c.Find(s.Name); dup {
			return nil, fmt.Errorf("%w: duplicate table %q", ErrCorruptCatalog, s.Name)
		}
		c.schemas = append(c.schemas, s)
	}
	return c, nil
}
