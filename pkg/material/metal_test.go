package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	// Test perfect reflection (fuzziness = 0)
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1), // Surface normal pointing up
	}

	// A mirror must not draw random numbers
	scatter, didScatter := metal.Scatter(rayIn, hit, panicSampler{})
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	// For perfect reflection: incident (0, -1, -1) normalized reflects to (0, -0.707, 0.707)
	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction

	tolerance := 1e-10
	if actual.Subtract(expected).Length() > tolerance {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}

	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_ZeroFuzzIsDeterministic(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)
	rayIn := core.NewRay(core.NewVec3(-1, 2, 0), core.NewVec3(0.3, -1, 0.2))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}

	first, _ := metal.Scatter(rayIn, hit, core.NewSeededSampler(1))
	for seed := int64(2); seed < 20; seed++ {
		next, _ := metal.Scatter(rayIn, hit, core.NewSeededSampler(seed))
		if !next.Scattered.Direction.Equals(first.Scattered.Direction) {
			t.Fatalf("Seed %d gave %v, expected %v", seed, next.Scattered.Direction, first.Scattered.Direction)
		}
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	// Test fuzzy reflection behavior
	albedo := core.NewVec3(0.8, 0.8, 0.8)
	metal := NewMetal(albedo, 0.5) // Moderate fuzziness
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	// Test multiple scatters to verify fuzziness introduces variation
	directions := make([]core.Vec3, 10)
	for i := 0; i < 10; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatalf("Metal should scatter on iteration %d", i)
		}
		directions[i] = scatter.Scattered.Direction.Normalize()
	}

	// With fuzziness, directions should vary (not all identical)
	allSame := true
	for i := 1; i < len(directions); i++ {
		if directions[i].Subtract(directions[0]).Length() > 1e-10 {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("Fuzzy metal should produce varying reflection directions")
	}

	// All scattered rays should still be above the surface
	for i, dir := range directions {
		if dir.Dot(hit.Normal) <= 0 {
			t.Errorf("Scattered ray %d should be above surface, got dot product %f", i, dir.Dot(hit.Normal))
		}
	}
}

func TestMetal_ScatterAbsorption(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0) // Maximum fuzziness

	// Grazing angle ray
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	t.Run("Perturbation into the surface is absorbed", func(t *testing.T) {
		// (0.5, 0.5, 0.05) maps to the in-sphere point (0, 0, -0.9)
		_, didScatter := metal.Scatter(rayIn, hit, newSequenceSampler(0.5, 0.5, 0.05))
		if didScatter {
			t.Error("Expected absorption when fuzz pushes the reflection below the surface")
		}
	})

	t.Run("Random perturbations mix both outcomes", func(t *testing.T) {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(123)))
		absorptionCount := 0
		scatterCount := 0

		for i := 0; i < 1000; i++ {
			_, didScatter := metal.Scatter(rayIn, hit, sampler)
			if didScatter {
				scatterCount++
			} else {
				absorptionCount++
			}
		}

		if absorptionCount == 0 {
			t.Error("Expected some rays to be absorbed with high fuzziness at grazing angle")
		}
		if scatterCount == 0 {
			t.Error("Expected some rays to be scattered")
		}
	})
}
