package game

// Collide reports whether two axis-aligned rectangles, given by center and full
// (already scaled) size, overlap with positive area. Touching edges do not count.
func Collide(aPos Position, aW, aH float32, bPos Position, bW, bH float32) bool {
	return aPos.X-aW/2 < bPos.X+bW/2 &&
		aPos.X+aW/2 > bPos.X-bW/2 &&
		aPos.Y-aH/2 < bPos.Y+bH/2 &&
		aPos.Y+aH/2 > bPos.Y-bH/2
}

func collideSprites(aPos *Position, aSize *SpriteSize, bPos *Position, bSize *SpriteSize) bool {
	aw, ah := aSize.Extent()
	bw, bh := bSize.Extent()
	return Collide(*aPos, aw, ah, *bPos, bw, bh)
}
