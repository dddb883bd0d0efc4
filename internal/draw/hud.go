package draw

import "fmt"

// Status is the text overlaid on the arena.
type Status struct {
	Score      int
	Level      int
	Legend     string // large centred caption, may be empty
	Prompt     string // hint under the legend, may be empty
	HighScores []int
}

// DrawStatus writes the score, the level and any legend over the arena.
// Remaining lives are drawn as ships by the simulation itself.
func DrawStatus(f *Frame, c *Canvas, s Status) {
	left, top, right, bottom := c.Bounds()

	f.WriteAt(left+1, top, fmt.Sprintf("%6d", s.Score))
	level := fmt.Sprintf("Level %d", s.Level)
	f.WriteAt(right-len(level), top, level)

	if s.Legend == "" {
		return
	}
	mid := (left + right) / 2
	row := (top+bottom)/2 - 3
	f.WriteCentered(mid, row, spaced(s.Legend))
	row += 2
	if s.Prompt != "" {
		f.WriteCentered(mid, row, s.Prompt)
		row += 2
	}
	if len(s.HighScores) == 0 {
		return
	}
	f.WriteCentered(mid, row, "High Scores")
	for i, score := range s.HighScores {
		f.WriteCentered(mid, row+1+i, fmt.Sprintf("%d. %6d", i+1, score))
	}
}

// spaced letter-spaces a caption the way the arcade title did.
func spaced(s string) string {
	out := make([]rune, 0, len(s)*2)
	for i, r := range s {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, r)
	}
	return string(out)
}
