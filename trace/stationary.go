package trace

// StationaryLocator scans a frame for a bright, white, roughly circular object.
// It is used during pre-roll to lock in the ball's resting position.
type StationaryLocator struct {
	params DetectorParams
	// Precomputed disk offsets relative to cell center
	disk []offset
}

type offset struct {
	dx, dy int
}

// NewStationaryLocatorDefault creates locator with standard parameters
func NewStationaryLocatorDefault() *StationaryLocator {
	return NewStationaryLocator(DefaultDetectorParams())
}

// NewStationaryLocator creates locator with given parameters
func NewStationaryLocator(params DetectorParams) *StationaryLocator {
	params = params.Normalize()
	radius := params.CellSize / 2
	disk := make([]offset, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			disk = append(disk, offset{dx: dx, dy: dy})
		}
	}
	return &StationaryLocator{
		params: params,
		disk:   disk,
	}
}

// Locate returns center of the highest scoring cell that clears brightness and white ratio floors.
// Cells are visited row-major, so the first one wins on equal score. Malformed frames yield no candidate.
func (locator *StationaryLocator) Locate(frame *Frame) (Candidate, bool) {
	if !frame.Valid() {
		return Candidate{}, false
	}
	cell := locator.params.CellSize
	half := cell / 2
	best := Candidate{}
	found := false
	for y := 0; y+cell <= frame.Height; y += cell {
		for x := 0; x+cell <= frame.Width; x += cell {
			cx := x + half
			cy := y + half
			brightness, whiteRatio, ok := locator.sampleDisk(frame, cx, cy)
			if !ok {
				continue
			}
			if brightness <= locator.params.BrightnessFloor || whiteRatio <= locator.params.WhiteRatioFloor {
				continue
			}
			score := brightness*locator.params.BrightnessWeight + whiteRatio*locator.params.WhiteRatioWeight
			if !found || score > best.Score {
				best = Candidate{
					X:          float64(cx),
					Y:          float64(cy),
					Score:      score,
					Brightness: brightness,
				}
				found = true
			}
		}
	}
	return best, found
}

// sampleDisk returns mean brightness and fraction of white-like pixels in the disk around (cx, cy)
func (locator *StationaryLocator) sampleDisk(frame *Frame, cx, cy int) (float64, float64, bool) {
	brightnessSum := 0.0
	whiteCount := 0
	pixelCount := 0
	for _, off := range locator.disk {
		px := cx + off.dx
		py := cy + off.dy
		if px < 0 || py < 0 || px >= frame.Width || py >= frame.Height {
			continue
		}
		r, g, b := frame.rgb(px, py)
		brightness := float64(r+g+b) / 3.0
		brightnessSum += brightness
		pixelCount++
		if locator.isWhiteLike(r, g, b, brightness) {
			whiteCount++
		}
	}
	if pixelCount == 0 {
		return 0, 0, false
	}
	return brightnessSum / float64(pixelCount), float64(whiteCount) / float64(pixelCount), true
}

// isWhiteLike accepts white, gray and light tones and rejects saturated colors
func (locator *StationaryLocator) isWhiteLike(r, g, b int, brightness float64) bool {
	if brightness <= locator.params.WhiteFloor {
		return false
	}
	return absInt(r-g) < locator.params.ChromaCeiling && absInt(g-b) < locator.params.ChromaCeiling
}
