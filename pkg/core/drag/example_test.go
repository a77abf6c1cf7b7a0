package drag_test

import (
	"fmt"

	"github.com/matzehuels/floatsheet/pkg/core/drag"
)

func ExampleDecide() {
	r := drag.Release{
		Velocity:      600,
		OriginY:       596,
		Anchor:        546,
		Bottom:        800,
		AllowsDismiss: true,
		Threshold:     drag.Threshold(drag.DefaultSensitivity),
	}
	fmt.Println(drag.Decide(r))

	r.Velocity = 400
	fmt.Println(drag.Decide(r))
	// Output:
	// dismiss
	// snap
}

func ExampleDimAlpha() {
	fmt.Printf("%.4f\n", drag.DimAlpha(596, 546, 224))
	// Output: 0.7768
}
