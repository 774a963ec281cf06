package fill

import (
	"fmt"
	"log"
)

// neighbors lists the 4-connected offsets in exploration order:
// up (-y), right (+x), down (+y), left (-x).
var neighbors = [4]struct{ dx, dy int }{
	{0, -1},
	{1, 0},
	{0, 1},
	{-1, 0},
}

// FillBFS performs a multi-seed flood fill using breadth-first traversal.
func FillBFS(cfg Config) (*Animation, error) {
	return Fill(cfg, BreadthFirst)
}

// FillDFS performs a multi-seed flood fill using depth-first traversal.
func FillDFS(cfg Config) (*Animation, error) {
	return Fill(cfg, DepthFirst)
}

// Fill runs a multi-seed flood fill over cfg.Image and returns the animation
// of its progress.
//
// Seeds are processed in list order. Each seed grows a region of pixels that
// are 4-connected to it and lie within cfg.Tolerance of its reference color,
// skipping pixels an earlier seed already claimed (a seed whose own pixel was
// claimed is skipped entirely). Every claimed pixel is recolored by the
// seed's picker as soon as it is discovered.
//
// A frame is recorded after every cfg.FrameFreq-th recolored pixel, counted
// across all seeds, and one final frame is always appended at the end. The
// order only changes the sequence of intermediate frames; the final image is
// the same for BreadthFirst and DepthFirst.
//
// On error the image may be partially filled and must be discarded.
func Fill(cfg Config, order Order) (*Animation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &filler{
		img:       cfg.Image,
		visited:   make([]bool, cfg.Image.Width()*cfg.Image.Height()),
		tolerance: cfg.Tolerance,
		frameFreq: cfg.FrameFreq,
		counter:   1,
		order:     order,
		anim:      NewAnimation(),
	}

	for i, seed := range cfg.Seeds {
		if err := f.fillSeed(i, seed, cfg.Pickers[i]); err != nil {
			return nil, err
		}
	}

	f.anim.AddFrame(f.img)
	f.anim.filled = f.counter - 1
	return f.anim, nil
}

// filler holds the state of a single fill invocation.
type filler struct {
	img       *Raster
	visited   []bool
	tolerance float64
	frameFreq int
	counter   int // ordinal of the next pixel to be recolored
	order     Order
	anim      *Animation
}

func (f *filler) fillSeed(i int, seed Seed, picker ColorPicker) error {
	if f.isVisited(seed.X, seed.Y) {
		debugf("seed %d at (%d,%d) already claimed, skipping", i, seed.X, seed.Y)
		return nil
	}

	start := Point{X: seed.X, Y: seed.Y, Seed: seed}
	if err := f.paint(i, start, picker); err != nil {
		return err
	}

	pending := newOrderingStructure(f.order)
	pending.Add(start)
	painted := 1

	for !pending.IsEmpty() {
		curr := pending.Remove()
		for _, n := range neighbors {
			nx, ny := curr.X+n.dx, curr.Y+n.dy
			if !f.img.InBounds(nx, ny) || f.isVisited(nx, ny) {
				continue
			}
			c, err := f.img.Read(nx, ny)
			if err != nil {
				return fmt.Errorf("fill engine defect at seed %d: %w", i, err)
			}
			if seed.Color.Dist(c) > f.tolerance {
				continue
			}
			next := Point{X: nx, Y: ny, Seed: seed}
			if err := f.paint(i, next, picker); err != nil {
				return err
			}
			pending.Add(next)
			painted++
		}
	}

	debugf("seed %d at (%d,%d) filled %d pixels (%s)", i, seed.X, seed.Y, painted, f.order)
	return nil
}

// paint recolors p, claims it and applies the frame cadence.
func (f *filler) paint(i int, p Point, picker ColorPicker) error {
	c, err := picker.Pick(p)
	if err != nil {
		return fmt.Errorf("seed %d: failed to pick color for (%d,%d): %w", i, p.X, p.Y, err)
	}
	if err := f.img.Write(p.X, p.Y, c); err != nil {
		return fmt.Errorf("fill engine defect at seed %d: %w", i, err)
	}
	f.visited[p.Y*f.img.Width()+p.X] = true

	if f.counter%f.frameFreq == 0 {
		f.anim.AddFrame(f.img)
	}
	f.counter++
	return nil
}

func (f *filler) isVisited(x, y int) bool {
	return f.visited[y*f.img.Width()+x]
}

// Debug enables per-seed progress logging through the standard logger.
var Debug bool

func debugf(format string, args ...interface{}) {
	if Debug {
		log.Printf("fill: "+format, args...)
	}
}
