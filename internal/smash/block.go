// Package smash plays SmashTheCode: a 6x12 well where pairs of colored
// blocks fall, groups of four or more same-colored blocks vanish and the
// resulting cascades score points that bury the opponent in skulls.
package smash

import "fmt"

// Block is the content of one grid cell. The zero value is an empty cell.
type Block uint8

const (
	Empty Block = iota
	Skull
	Color1
	Color2
	Color3
	Color4
	Color5
)

// NumColors is the number of distinct block colors.
const NumColors = 5

// BlockFromByte decodes the judge notation: '.' empty, '0' skull, '1'..'5' colors.
func BlockFromByte(c byte) (Block, error) {
	switch {
	case c == '.':
		return Empty, nil
	case c == '0':
		return Skull, nil
	case c >= '1' && c <= '5':
		return Color1 + Block(c-'1'), nil
	}
	return Empty, fmt.Errorf("invalid block %q", c)
}

// Byte encodes b in judge notation.
func (b Block) Byte() byte {
	switch {
	case b == Skull:
		return '0'
	case b.IsColor():
		return '1' + byte(b-Color1)
	}
	return '.'
}

func (b Block) String() string { return string(b.Byte()) }

func (b Block) IsEmpty() bool { return b == Empty }

func (b Block) IsSkull() bool { return b == Skull }

func (b Block) IsColor() bool { return b >= Color1 && b <= Color5 }

// colorIndex maps Color1..Color5 to 0..4. Only valid for colors.
func (b Block) colorIndex() int { return int(b - Color1) }
