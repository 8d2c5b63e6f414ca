// scenetool is a CLI utility for inspecting scene descriptions and glTF files.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/scenegraph/internal/engine/picking"
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/internal/game/entity"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "dump", "tree":
		cmdDump(args)
	case "node", "find":
		cmdNode(args)
	case "pick":
		cmdPick(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scenetool - scene hierarchy inspector

Usage:
  scenetool <command> [options]

Commands:
  info <scene>                  Show entity counts and world bounds
  dump [-t sec] <scene>         Print the hierarchy after t seconds of animation
  node [-t sec] <scene> <name>  Show the local and world transform of a node
  pick [-w W -h H] <scene> <x> <y>
                                Pick the nearest mesh under a screen position

Scenes are YAML descriptions or .gltf/.glb files.

Examples:
  scenetool info robot.yaml
  scenetool dump -t 0.5 robot.yaml
  scenetool node robot.yaml arm
  scenetool pick -w 1280 -h 720 robot.yaml 640 360`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

func open(path string, seconds float64) *scene.Scene {
	s, err := scene.Load(path, nil)
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	// Advance in 1/60s steps the way the demo loop does.
	const step = float32(1.0 / 60)
	for t := float32(0); t < float32(seconds); t += step {
		s.Update(step)
	}
	return s
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fatalf("Usage: scenetool info <scene>\n")
	}

	s := open(args[0], 0)
	defer s.Close()

	counts := make(map[entity.Type]int)
	for _, e := range s.Entities.All() {
		counts[e.Type]++
	}
	types := make([]entity.Type, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	b := s.Bounds()
	fmt.Printf("Scene:      %s\n", s.Name)
	fmt.Printf("Entities:   %d\n", s.Entities.Count())
	fmt.Printf("Animations: %d\n", s.Motion.Len())
	if !b.IsEmpty() {
		fmt.Printf("Bounds:     %s .. %s\n", vec(b.Min), vec(b.Max))
	}
	fmt.Println()
	fmt.Println("Entities by type:")
	for _, t := range types {
		fmt.Printf("  %-8s %d\n", t, counts[t])
	}
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	seconds := fs.Float64("t", 0, "Seconds of animation to run first")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatalf("Usage: scenetool dump [-t sec] <scene>\n")
	}

	s := open(fs.Arg(0), *seconds)
	defer s.Close()
	if err := s.Dump(os.Stdout); err != nil {
		fatalf("Error: %v\n", err)
	}
}

func cmdNode(args []string) {
	fs := flag.NewFlagSet("node", flag.ExitOnError)
	seconds := fs.Float64("t", 0, "Seconds of animation to run first")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fatalf("Usage: scenetool node [-t sec] <scene> <name>\n")
	}

	s := open(fs.Arg(0), *seconds)
	defer s.Close()

	e := s.Find(fs.Arg(1))
	if e == nil {
		fatalf("No node named %q\n", fs.Arg(1))
	}
	fmt.Printf("Path: %s (%s)\n", e.Path(), e.Type)
	xf := e.Transform()
	if xf == nil {
		fmt.Println("Group without transform")
		return
	}
	if p := xf.Parent(); p != nil {
		if owner, ok := p.Owner().(*entity.Entity); ok {
			fmt.Printf("Transform parent: %s\n", owner.Path())
		}
	}
	fmt.Println()
	fmt.Printf("  local position  %s\n", vec(xf.LocalPosition()))
	fmt.Printf("  local euler     %s\n", vec(xf.LocalEuler()))
	fmt.Printf("  local scale     %s\n", vec(xf.LocalScale()))
	fmt.Printf("  world position  %s\n", vec(xf.WorldPosition()))
	fmt.Printf("  world euler     %s\n", vec(xf.WorldEuler()))
	fmt.Printf("  lossy scale     %s\n", vec(xf.LossyScale()))
}

func cmdPick(args []string) {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	width := fs.Float64("w", 1280, "Viewport width")
	height := fs.Float64("h", 720, "Viewport height")
	fs.Parse(args)

	if fs.NArg() < 3 {
		fatalf("Usage: scenetool pick [-w W -h H] <scene> <x> <y>\n")
	}
	x, errX := strconv.ParseFloat(fs.Arg(1), 64)
	y, errY := strconv.ParseFloat(fs.Arg(2), 64)
	if errX != nil || errY != nil {
		fatalf("Invalid screen position %q %q\n", fs.Arg(1), fs.Arg(2))
	}

	s := open(fs.Arg(0), 0)
	defer s.Close()

	s.Camera.Aspect = *width / *height
	ray := picking.ScreenToRay(x, y, *width, *height, s.Camera.ViewProjection().Inv())
	hit, ok := s.Pick(ray)
	if !ok {
		fmt.Println("Nothing under cursor")
		return
	}
	fmt.Printf("Hit:      %s\n", hit.Entity.Path())
	fmt.Printf("Distance: %.3f\n", hit.Distance)
	fmt.Printf("Point:    %s\n", vec(hit.Point))
}

func vec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}
