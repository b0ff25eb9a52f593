package storage

// Page is one fixed-size buffer of the data region. The Pager owns every
// Page; callers must not keep a *Page across pager calls.
type Page struct {
	num   uint32
	buf   [PageSize]byte
	dirty bool
}

func (p *Page) Num() uint32 { return p.num }

// Bytes exposes the whole page buffer.
func (p *Page) Bytes() []byte { return p.buf[:] }

// Slot returns the size-byte window starting at off.
func (p *Page) Slot(off, size uint32) ([]byte, error) {
	if uint64(off)+uint64(size) > PageSize {
		return nil, ErrPageOutOfBounds
	}
	return p.buf[off : off+size], nil
}

func (p *Page) MarkDirty()    { p.dirty = true }
func (p *Page) IsDirty() bool { return p.dirty }
