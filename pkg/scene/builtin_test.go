package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

func TestThreeSpheresScene(t *testing.T) {
	s := NewThreeSpheresScene()
	if len(s.Shapes) != 5 {
		t.Fatalf("Expected 5 spheres, got %d", len(s.Shapes))
	}

	bubble := s.Shapes[3].(*geometry.Sphere)
	glass, ok := bubble.Material.(*material.Dielectric)
	if !ok {
		t.Fatalf("Expected the bubble to be glass, got %T", bubble.Material)
	}
	if glass.RefractiveIndex != 1.0/1.5 {
		t.Errorf("Expected bubble index 1/1.5, got %v", glass.RefractiveIndex)
	}
	if bubble.Radius != 0.4 {
		t.Errorf("Expected bubble radius 0.4, got %v", bubble.Radius)
	}

	if err := s.CameraConfig.Validate(); err != nil {
		t.Errorf("Built-in camera should be valid: %v", err)
	}
}

func TestFinalScene_Layout(t *testing.T) {
	s := NewFinalScene()

	// Ground, up to 22x22 small spheres, three large spheres
	if len(s.Shapes) < 4+400 || len(s.Shapes) > 4+22*22 {
		t.Fatalf("Unexpected sphere count %d", len(s.Shapes))
	}

	ground := s.Shapes[0].(*geometry.Sphere)
	if ground.Radius != 1000 || ground.Center != core.NewVec3(0, -1000, 0) {
		t.Errorf("Expected ground sphere first, got %+v", ground)
	}

	keepClear := core.NewVec3(4, 0.2, 0)
	for _, shape := range s.Shapes[1 : len(s.Shapes)-3] {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius != 0.2 || sphere.Center.Y != 0.2 {
			t.Fatalf("Unexpected small sphere %+v", sphere)
		}
		if sphere.Center.Subtract(keepClear).Length() <= 0.9 {
			t.Fatalf("Small sphere %v overlaps the large metal sphere", sphere.Center)
		}
	}

	cfg := s.CameraConfig
	if cfg.LookFrom != core.NewVec3(13, 2, 3) || cfg.VFov != 20 || cfg.DefocusAngle != 0.6 || cfg.FocusDist != 10 {
		t.Errorf("Unexpected final camera %+v", cfg)
	}
	if cfg.ImageWidth != 1200 || cfg.SamplesPerPixel != 500 || cfg.MaxDepth != 50 {
		t.Errorf("Unexpected final render settings %+v", cfg)
	}
}

func TestFinalScene_Deterministic(t *testing.T) {
	a := NewFinalScene()
	b := NewFinalScene()

	if len(a.Shapes) != len(b.Shapes) {
		t.Fatalf("Sphere counts differ: %d vs %d", len(a.Shapes), len(b.Shapes))
	}
	for i := range a.Shapes {
		sa := a.Shapes[i].(*geometry.Sphere)
		sb := b.Shapes[i].(*geometry.Sphere)
		if sa.Center != sb.Center || sa.Radius != sb.Radius {
			t.Fatalf("Sphere %d differs: %v vs %v", i, sa.Center, sb.Center)
		}
	}
}

func TestFinalScene_MaterialMix(t *testing.T) {
	s := NewFinalScene()
	counts := map[string]int{}
	for _, shape := range s.Shapes[1 : len(s.Shapes)-3] {
		switch m := shape.(*geometry.Sphere).Material.(type) {
		case *material.Lambertian:
			counts["diffuse"]++
		case *material.Metal:
			counts["metal"]++
			if m.Fuzzness < 0 || m.Fuzzness >= 0.5 {
				t.Errorf("Metal fuzz out of range: %v", m.Fuzzness)
			}
		case *material.Dielectric:
			counts["glass"]++
		}
	}

	if counts["diffuse"] <= counts["metal"] || counts["metal"] <= counts["glass"] {
		t.Errorf("Expected diffuse > metal > glass, got %v", counts)
	}
}

func TestCameraOverrides(t *testing.T) {
	s := NewFinalScene(renderer.CameraConfig{ImageWidth: 64, SamplesPerPixel: 4})
	if s.CameraConfig.ImageWidth != 64 || s.CameraConfig.SamplesPerPixel != 4 {
		t.Errorf("Overrides not applied: %+v", s.CameraConfig)
	}
	if s.CameraConfig.VFov != 20 {
		t.Errorf("Non-overridden fields should keep scene values, got vfov %v", s.CameraConfig.VFov)
	}
}

func TestCreate(t *testing.T) {
	for _, info := range List() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Create(info.ID)
			if err != nil {
				t.Fatalf("Create(%q) error: %v", info.ID, err)
			}
			if len(s.Shapes) == 0 {
				t.Error("Built-in scene should not be empty")
			}
			if err := s.CameraConfig.Validate(); err != nil {
				t.Errorf("Built-in camera should be valid: %v", err)
			}
		})
	}

	_, err := Create("no-such-scene")
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}
