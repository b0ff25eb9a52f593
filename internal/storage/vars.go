package storage

import (
	"errors"

	"github.com/tuannm99/pagesql/internal/catalog"
)

const (
	OneKB = 1 << 10 // 1,024

	PageSize = 4 * OneKB // 4,096
	MaxPages = 100       // page slots per open database

	// DefaultHeaderPages reserves one page for the catalog, placing the data
	// region at byte 4096.
	DefaultHeaderPages = 1
)

const (
	FileMode0600 = 0o600 // rw-------
	FileMode0644 = 0o644
)

var (
	ErrPageOutOfBounds = errors.New("storage: page number out of bounds")
	ErrShortRead       = errors.New("storage: short read")
	ErrShortWrite      = errors.New("storage: short write")
	ErrStorageIO       = errors.New("storage: I/O error")
	ErrPagerClosed     = errors.New("storage: pager is closed")
	ErrCatalogTooLarge = errors.New("storage: catalog does not fit in header region")
	ErrBadFlushSize    = errors.New("storage: flush size exceeds page size")
)

// IsFatal reports whether err leaves the on-disk invariants untrustworthy.
// Callers must stop using the database after a fatal error.
func IsFatal(err error) bool {
	return errors.Is(err, ErrPageOutOfBounds) ||
		errors.Is(err, ErrShortRead) ||
		errors.Is(err, ErrShortWrite) ||
		errors.Is(err, ErrStorageIO) ||
		errors.Is(err, ErrCatalogTooLarge) ||
		errors.Is(err, catalog.ErrCorruptCatalog)
}

// RowsPerPage is how many rows of rowSize fit in a page. Rows never span pages.
func RowsPerPage(rowSize uint32) uint32 {
	if rowSize == 0 || rowSize > PageSize {
		return 0
	}
	return PageSize / rowSize
}

// MaxRows is the table capacity for rows of rowSize.
func MaxRows(rowSize uint32) uint32 {
	return MaxPages * RowsPerPage(rowSize)
}

// RowCount derives the number of stored rows from the size of the data region.
// Every page but the last is written whole, so only the tail is divided by rowSize.
func RowCount(dataLen int64, rowSize uint32) uint32 {
	rpp := RowsPerPage(rowSize)
	if rpp == 0 || dataLen <= 0 {
		return 0
	}

	full := dataLen / PageSize
	tail := uint32(dataLen%PageSize) / rowSize
	n := uint64(full)*uint64(rpp) + uint64(min(tail, rpp))
	return uint32(min(n, uint64(MaxRows(rowSize))))
}
