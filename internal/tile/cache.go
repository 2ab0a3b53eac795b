package tile

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"

	"cellgrid/internal/core"
)

// CacheCapacity is the number of block lists a Cache keeps. Zooming walks
// through one cell size per step, so older sizes are evicted.
const CacheCapacity = 8

// MaskKey identifies a compiled mask.
type MaskKey struct {
	Size    int
	Shape   Shape
	Padding int
	Fade    float64
}

type blockKey struct {
	MaskKey
	stride int
}

// Cache memoizes compiled block lists, least recently used first out. Masks
// are only needed to compile blocks and are not kept. A Cache is owned by
// one engine and is not safe for concurrent use.
type Cache struct {
	blocks *simplelru.LRU[blockKey, []Block]

	hits, misses uint64
}

// NewCache returns an empty cache holding up to CacheCapacity block lists.
func NewCache() *Cache {
	lru, err := simplelru.NewLRU[blockKey, []Block](CacheCapacity, nil)
	if err != nil {
		panic(err)
	}
	return &Cache{blocks: lru}
}

// Blocks returns the block list for key laid out for the given stride,
// compiling it on first use. The returned slice is shared and must not be
// modified.
func (c *Cache) Blocks(key MaskKey, stride int) []Block {
	bk := blockKey{MaskKey: key, stride: stride}
	if b, ok := c.blocks.Get(bk); ok {
		c.hits++
		return b
	}
	c.misses++
	core.Logger().Debug("compile tile", "size", key.Size, "shape", key.Shape.String(), "padding", key.Padding)
	b := CompileBlocks(CompileMask(key.Size, key.Shape, key.Padding, key.Fade), stride)
	c.blocks.Add(bk, b)
	return b
}

// Clear drops every memoized entry.
func (c *Cache) Clear() { c.blocks.Purge() }

// Len returns the number of memoized block lists.
func (c *Cache) Len() int { return c.blocks.Len() }

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses uint64) { return c.hits, c.misses }
