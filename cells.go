package main

// cellPage is one live segment's worth of runtime cells: a dense vector
// grown on write, reading past the high-water mark yields the segment's
// typed zero. Adapted from a paged int memory; here each page is pinned to
// one 1000-cell segment so the address arithmetic stays trivial.
type cellPage struct {
	seg   segment
	cells []value
}

func newCellPage(seg segment, sizeHint int) cellPage {
	var cells []value
	if sizeHint > 0 {
		if sizeHint > segmentSize {
			sizeHint = segmentSize
		}
		cells = make([]value, 0, sizeHint)
	}
	return cellPage{seg: seg, cells: cells}
}

func (pg *cellPage) zero() value {
	if pg.seg.valueType() == typeFloat {
		return floatValue(0)
	}
	return intValue(0)
}

func (pg *cellPage) load(addr int) (value, error) {
	i := addr - pg.seg.base()
	if i < 0 || i >= segmentSize {
		return value{}, addrError(addr)
	}
	if i >= len(pg.cells) {
		return pg.zero(), nil
	}
	return pg.cells[i], nil
}

// stor writes a cell, widening int values stored into a float segment; the
// compiler's int→float assignment rule is realized here.
func (pg *cellPage) stor(addr int, v value) error {
	i := addr - pg.seg.base()
	if i < 0 || i >= segmentSize {
		return addrError(addr)
	}
	for len(pg.cells) <= i {
		pg.cells = append(pg.cells, pg.zero())
	}
	pg.cells[i] = v.widen(pg.seg.valueType())
	return nil
}

// written visits every cell up to the highest one stored, in address order;
// a never-written cell below that mark is visited as the typed zero.
func (pg *cellPage) written(visit func(addr int, v value)) {
	for i, v := range pg.cells {
		visit(pg.seg.base()+i, v)
	}
}

// pagePair is the int and float page of one storage class.
type pagePair [2]cellPage

func newPagePair(class int, intHint, floatHint int) pagePair {
	return pagePair{
		newCellPage(segment(2*class), intHint),
		newCellPage(segment(2*class)+1, floatHint),
	}
}

func (pp *pagePair) page(s segment) *cellPage { return &pp[s%2] }
