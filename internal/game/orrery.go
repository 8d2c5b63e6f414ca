package game

import "github.com/Faultbox/scenegraph/internal/engine/scene"

func vec(x, y, z float64) *[3]float64 {
	return &[3]float64{x, y, z}
}

var unitBox = &[6]float64{-0.5, -0.5, -0.5, 0.5, 0.5, 0.5}

// Orrery returns the built-in demo scene: a sun with a spinning planet
// system, a moon riding the planet and a camera parked above the plane.
func Orrery() *scene.Description {
	return &scene.Description{
		Name:   "orrery",
		Camera: &scene.CameraDesc{Follow: "eye", FovY: 50},
		Nodes: []scene.NodeDesc{
			{
				Name:   "sun",
				Type:   "mesh",
				Scale:  vec(2, 2, 2),
				Bounds: unitBox,
				Children: []scene.NodeDesc{
					{
						Name: "orbit",
						Tweens: []scene.TweenDesc{
							{Property: "euler", To: [3]float64{0, 360, 0}, Duration: 4},
						},
						Children: []scene.NodeDesc{
							{
								Name:     "planet",
								Type:     "mesh",
								Position: vec(5, 0, 0),
								Bounds:   unitBox,
								Tweens: []scene.TweenDesc{
									{Property: "euler", To: [3]float64{0, -720, 0}, Duration: 4},
								},
								Children: []scene.NodeDesc{
									{
										Name:     "moon",
										Type:     "mesh",
										Position: vec(1.5, 0, 0),
										Scale:    vec(0.3, 0.3, 0.3),
										Bounds:   unitBox,
									},
								},
							},
						},
					},
				},
			},
			{
				Name:     "eye",
				Type:     "camera",
				Position: vec(0, 12, 12),
				Euler:    vec(-45, 0, 0),
			},
		},
	}
}
