// Package layout computes horizontal positions for runs of variable-width
// elements centered inside a container.
package layout

// Center returns the start offset that centers total inside container,
// rounding down. It is negative when total overflows the container.
func Center(container, total int) int {
	return floorDiv(container-total, 2)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Row is a horizontal run of elements separated by a fixed spacing.
type Row struct {
	Spacing int

	widths []int
	pads   []int // extra space before element i
	pad    int
}

// NewRow creates an empty row.
func NewRow(spacing int) *Row {
	return &Row{Spacing: spacing}
}

// Add appends an element of the given width.
func (r *Row) Add(width int) *Row {
	r.widths = append(r.widths, width)
	r.pads = append(r.pads, r.pad)
	r.pad = 0
	return r
}

// Pad widens the gap before the next element by px. A pad before the first
// element is a left inset; a pad with no element after it is ignored.
func (r *Row) Pad(px int) *Row {
	r.pad += px
	return r
}

// Len returns the number of elements.
func (r *Row) Len() int {
	return len(r.widths)
}

// Width is the total span: element widths, one spacing between
// neighbours, and any pads.
func (r *Row) Width() int {
	total := 0
	for i, w := range r.widths {
		total += w + r.pads[i]
		if i > 0 {
			total += r.Spacing
		}
	}
	return total
}

// Place returns the absolute x of every element with the run centered in
// the container [x0, x0+container).
func (r *Row) Place(x0, container int) []int {
	xs := make([]int, len(r.widths))
	x := x0 + Center(container, r.Width())
	for i, w := range r.widths {
		if i > 0 {
			x += r.Spacing
		}
		x += r.pads[i]
		xs[i] = x
		x += w
	}
	return xs
}

// Slots splits a container into n equal slots of the given width and
// centers the group; it returns the left edge of each slot.
func Slots(container, slot, n int) []int {
	if n <= 0 {
		return nil
	}
	xs := make([]int, n)
	start := Center(container, slot*n)
	for i := range xs {
		xs[i] = start + i*slot
	}
	return xs
}
