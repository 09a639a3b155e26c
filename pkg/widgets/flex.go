package widgets

import (
	"math"

	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

// MainAxisAlignment controls how spare main-axis room is distributed
// between the children of a Flex.
type MainAxisAlignment int

const (
	MainAxisStart MainAxisAlignment = iota
	MainAxisCenter
	MainAxisEnd
	MainAxisSpaceBetween
	MainAxisSpaceAround
	MainAxisSpaceEvenly
)

// CrossAxisAlignment controls how children are positioned across the
// main axis.
type CrossAxisAlignment int

const (
	CrossAxisStart CrossAxisAlignment = iota
	CrossAxisCenter
	CrossAxisEnd
	// CrossAxisStretch forces children to fill the cross axis.
	CrossAxisStretch
)

// Flex lays out children along one axis. Children wrapped in Flexible
// share the main-axis room left over after the inflexible children have
// taken their natural sizes.
type Flex struct {
	core.KeyedBase
	Direction layout.Axis
	MainAxis  MainAxisAlignment
	CrossAxis CrossAxisAlignment
}

// Row is a horizontal Flex.
func Row() Flex { return Flex{Direction: layout.AxisHorizontal} }

// Column is a vertical Flex.
func Column() Flex { return Flex{Direction: layout.AxisVertical} }

func (w Flex) CreateRenderObject() layout.RenderObject {
	r := &renderFlex{direction: w.Direction, mainAxis: w.MainAxis, crossAxis: w.CrossAxis}
	r.SetSelf(r)
	return r
}

func (w Flex) UpdateRenderObject(renderObject layout.RenderObject) {
	r := renderObject.(*renderFlex)
	if r.direction != w.Direction || r.mainAxis != w.MainAxis || r.crossAxis != w.CrossAxis {
		r.direction = w.Direction
		r.mainAxis = w.MainAxis
		r.crossAxis = w.CrossAxis
		r.MarkNeedsLayout()
	}
}

// Flexible gives its child a share of a Flex's leftover main-axis room,
// proportional to Factor. Only meaningful directly under a Flex.
type Flexible struct {
	core.KeyedBase
	Factor int
}

func (w Flexible) CreateRenderObject() layout.RenderObject {
	factor := w.Factor
	if factor <= 0 {
		factor = 1
	}
	r := &renderFlexible{factor: factor}
	r.SetSelf(r)
	return r
}

func (w Flexible) UpdateRenderObject(renderObject layout.RenderObject) {
	r := renderObject.(*renderFlexible)
	factor := w.Factor
	if factor <= 0 {
		factor = 1
	}
	if r.factor != factor {
		r.factor = factor
		r.MarkNeedsLayout()
	}
}

// renderFlexible is a pass-through box that carries the flex factor its
// parent renderFlex reads during layout.
type renderFlexible struct {
	layout.RenderBoxBase
	factor int
}

func (r *renderFlexible) FlexFactor() int { return r.factor }

type renderFlex struct {
	layout.RenderBoxBase
	direction layout.Axis
	mainAxis  MainAxisAlignment
	crossAxis CrossAxisAlignment
}

func flexFactorOf(child layout.RenderObject) int {
	if f, ok := child.(interface{ FlexFactor() int }); ok {
		return f.FlexFactor()
	}
	return 0
}

func (r *renderFlex) mainOf(size graphics.Size) float64 {
	if r.direction == layout.AxisHorizontal {
		return size.Width
	}
	return size.Height
}

func (r *renderFlex) crossOf(size graphics.Size) float64 {
	if r.direction == layout.AxisHorizontal {
		return size.Height
	}
	return size.Width
}

func (r *renderFlex) childConstraints(mainMin, mainMax, crossMax float64) layout.BoxConstraints {
	crossMin := 0.0
	if r.crossAxis == CrossAxisStretch && !math.IsInf(crossMax, 1) {
		crossMin = crossMax
	}
	if r.direction == layout.AxisHorizontal {
		return layout.BoxConstraints{
			MinWidth: mainMin, MaxWidth: mainMax,
			MinHeight: crossMin, MaxHeight: crossMax,
		}
	}
	return layout.BoxConstraints{
		MinWidth: crossMin, MaxWidth: crossMax,
		MinHeight: mainMin, MaxHeight: mainMax,
	}
}

func (r *renderFlex) PerformLayout() {
	constraints := r.BoxConstraints()
	mainMax := constraints.MaxWidth
	crossMax := constraints.MaxHeight
	if r.direction == layout.AxisVertical {
		mainMax, crossMax = crossMax, mainMax
	}

	var allocated, crossExtent float64
	totalFlex := 0

	// Inflexible children take their natural main-axis size.
	for i := 0; i < r.ChildCount(); i++ {
		child := r.ChildAt(i)
		if factor := flexFactorOf(child); factor > 0 {
			totalFlex += factor
			continue
		}
		child.Layout(r.childConstraints(0, layout.Unbounded, crossMax), true)
		size := child.(layout.RenderBox).Size()
		allocated += r.mainOf(size)
		crossExtent = math.Max(crossExtent, r.crossOf(size))
	}

	// Flexible children split what is left.
	if totalFlex > 0 {
		if math.IsInf(mainMax, 1) {
			panic("widgets: Flexible children need a bounded main axis")
		}
		free := math.Max(0, mainMax-allocated)
		for i := 0; i < r.ChildCount(); i++ {
			child := r.ChildAt(i)
			factor := flexFactorOf(child)
			if factor == 0 {
				continue
			}
			extent := free * float64(factor) / float64(totalFlex)
			child.Layout(r.childConstraints(extent, extent, crossMax), true)
			size := child.(layout.RenderBox).Size()
			allocated += r.mainOf(size)
			crossExtent = math.Max(crossExtent, r.crossOf(size))
		}
	}

	mainExtent := allocated
	if totalFlex > 0 && !math.IsInf(mainMax, 1) {
		mainExtent = mainMax
	}
	var size graphics.Size
	if r.direction == layout.AxisHorizontal {
		size = constraints.Constrain(graphics.Size{Width: mainExtent, Height: crossExtent})
	} else {
		size = constraints.Constrain(graphics.Size{Width: crossExtent, Height: mainExtent})
	}
	r.SetSize(size)

	r.positionChildren(r.mainOf(size), r.crossOf(size), allocated)
}

func (r *renderFlex) positionChildren(mainExtent, crossExtent, allocated float64) {
	count := r.ChildCount()
	if count == 0 {
		return
	}
	free := math.Max(0, mainExtent-allocated)
	var leading, between float64
	switch r.mainAxis {
	case MainAxisStart:
	case MainAxisCenter:
		leading = free / 2
	case MainAxisEnd:
		leading = free
	case MainAxisSpaceBetween:
		if count > 1 {
			between = free / float64(count-1)
		}
	case MainAxisSpaceAround:
		between = free / float64(count)
		leading = between / 2
	case MainAxisSpaceEvenly:
		between = free / float64(count+1)
		leading = between
	}

	position := leading
	for i := 0; i < count; i++ {
		child := r.ChildAt(i)
		size := child.(layout.RenderBox).Size()
		var cross float64
		switch r.crossAxis {
		case CrossAxisStart, CrossAxisStretch:
		case CrossAxisCenter:
			cross = (crossExtent - r.crossOf(size)) / 2
		case CrossAxisEnd:
			cross = crossExtent - r.crossOf(size)
		}
		offset := graphics.Offset{X: position, Y: cross}
		if r.direction == layout.AxisVertical {
			offset = graphics.Offset{X: cross, Y: position}
		}
		layout.BoxParentDataOf(child).Offset = offset
		position += r.mainOf(size) + between
	}
}
