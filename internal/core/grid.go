package core

import "fmt"

// TilePos identifies a single cell of a tilemap.
type TilePos struct {
	X, Y uint32
}

// String formats the position as (x,y).
func (p TilePos) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// TilemapSize is the width (X) and height (Y) of a tilemap in tiles.
type TilemapSize struct {
	X, Y uint32
}

// Count returns the number of cells covered by the size.
func (s TilemapSize) Count() int { return int(s.X) * int(s.Y) }

// Contains reports whether pos lies inside the map bounds.
func (s TilemapSize) Contains(pos TilePos) bool { return pos.X < s.X && pos.Y < s.Y }

// String formats the size as WxH.
func (s TilemapSize) String() string { return fmt.Sprintf("%dx%d", s.X, s.Y) }

// PosToIndex returns the row-major slice index for pos.
func PosToIndex(pos TilePos, size TilemapSize) int {
	return int(pos.Y)*int(size.X) + int(pos.X)
}

// IndexToPos is the inverse of PosToIndex.
func IndexToPos(idx int, size TilemapSize) TilePos {
	if size.X == 0 {
		return TilePos{}
	}
	w := int(size.X)
	return TilePos{X: uint32(idx % w), Y: uint32(idx / w)}
}
