package motion

import (
	"encoding/json"
	"io"

	"github.com/tauraamui/xerror"
)

// Document is the serialized form of a Sequence.
type Document struct {
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Frames []FrameRecord `json:"frames"`
}

// FrameRecord holds one frame's components, both indexed [col][row].
type FrameRecord struct {
	Index int     `json:"index"`
	X     [][]int `json:"x"`
	Y     [][]int `json:"y"`
}

func NewDocument(seq *Sequence) Document {
	doc := Document{Width: seq.Width, Height: seq.Height, Frames: []FrameRecord{}}
	for _, e := range seq.Entries() {
		xs, ys := e.Grid.Columns()
		doc.Frames = append(doc.Frames, FrameRecord{Index: e.Index, X: xs, Y: ys})
	}
	return doc
}

// Sequence rebuilds the run the document was made from.
func (d Document) Sequence() (*Sequence, error) {
	seq := NewSequence(d.Width, d.Height)
	for _, f := range d.Frames {
		if err := f.validate(); err != nil {
			return nil, err
		}
		seq.Append(f.Index, GridFromColumns(f.X, f.Y))
	}
	return seq, nil
}

func (f FrameRecord) validate() error {
	if len(f.X) != len(f.Y) {
		return xerror.Errorf("frame %d: x has %d columns, y has %d", f.Index, len(f.X), len(f.Y))
	}
	for col := range f.X {
		if len(f.X[col]) != len(f.Y[col]) || len(f.X[col]) != len(f.X[0]) {
			return xerror.Errorf("frame %d: column %d has inconsistent rows", f.Index, col)
		}
	}
	return nil
}

func EncodeDocument(w io.Writer, seq *Sequence) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(NewDocument(seq)); err != nil {
		return xerror.Errorf("unable to encode motion document: %w", err)
	}
	return nil
}

func DecodeDocument(r io.Reader) (*Sequence, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, xerror.Errorf("unable to decode motion document: %w", err)
	}
	return doc.Sequence()
}
