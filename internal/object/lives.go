package object

import (
	"fmt"
	"math"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

var livesOutline = physics.Polygon(11, 0, -11, 6, -7, 5, -7, -5, -11, -6)

// Lives is one small ship in the remaining-lives row. It is purely decorative
// and is replaced whenever the row is redrawn.
type Lives struct {
	Base

	index int
}

// NewLives creates the marker for the index-th remaining life, counting from
// the left.
func NewLives(ctx *Context, index int) (*Lives, error) {
	if index < 0 {
		return nil, fmt.Errorf("lives index %d: %w", index, ErrInvalidArgument)
	}
	rules := ctx.Rules
	l := &Lives{Base: newBase(ctx, livesOutline), index: index}
	l.SetPosition(
		rules.LabelOffset+rules.LifeWidth+float64(index)*rules.LifeSeparation,
		rules.Size-(rules.LabelOffset+rules.LifeHeight/2),
	)
	l.SetRotation(-math.Pi / 2)
	return l, nil
}

func (l *Lives) Kind() Kind     { return KindLives }
func (l *Lives) Category() Tags { return 0 }
func (l *Lives) Destroys() Tags { return 0 }

// Index is the marker's slot in the row.
func (l *Lives) Index() int { return l.index }
