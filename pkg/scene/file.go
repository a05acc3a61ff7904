package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

var logger = log.New("scene")

// ErrUnknownMaterial is returned when a scene file names a material type or reference that does not exist
var ErrUnknownMaterial = errors.New("unknown material")

// Material type names used in scene files
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// Vector is a JSON [x, y, z] triple
type Vector [3]float64

// Vec3 converts the triple to a core vector
func (v Vector) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// VectorOf converts a core vector to a JSON triple
func VectorOf(v core.Vec3) Vector {
	return Vector{v.X, v.Y, v.Z}
}

// File is the on-disk JSON representation of a scene
type File struct {
	Name        string                  `json:"name,omitempty"`
	Description string                  `json:"description,omitempty"`
	Group       string                  `json:"group,omitempty"`
	Camera      CameraFile              `json:"camera"`
	Background  *BackgroundFile         `json:"background,omitempty"`
	Materials   map[string]MaterialFile `json:"materials"`
	Spheres     []SphereFile            `json:"spheres"`
}

// CameraFile holds camera settings. Omitted fields keep the default camera values. MaxDepth is a
// pointer because an explicit 0 is a valid depth.
type CameraFile struct {
	AspectRatio     float64 `json:"aspectRatio,omitempty"`
	ImageWidth      int     `json:"imageWidth,omitempty"`
	SamplesPerPixel int     `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int    `json:"maxDepth,omitempty"`
	VFov            float64 `json:"vfov,omitempty"`
	LookFrom        *Vector `json:"lookFrom,omitempty"`
	LookAt          *Vector `json:"lookAt,omitempty"`
	VUp             *Vector `json:"vup,omitempty"`
	DefocusAngle    float64 `json:"defocusAngle,omitempty"`
	FocusDist       float64 `json:"focusDist,omitempty"`
}

// BackgroundFile holds the sky gradient colors
type BackgroundFile struct {
	Top    Vector `json:"top"`
	Bottom Vector `json:"bottom"`
}

// MaterialFile describes one named material
type MaterialFile struct {
	Type            string  `json:"type"`
	Albedo          *Vector `json:"albedo,omitempty"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractionIndex float64 `json:"refractionIndex,omitempty"`
}

// SphereFile describes one sphere and the name of its material
type SphereFile struct {
	Center   Vector  `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// Load reads and builds a scene from a JSON file
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Infof("loaded %d spheres from %s", len(s.Shapes), path)
	return s, nil
}

// Decode reads a JSON scene description from r and builds the scene
func Decode(r io.Reader) (*Scene, error) {
	var file File
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("malformed scene file: %w", err)
	}
	return Build(&file)
}

// Build turns a parsed scene file into a scene. Materials are created once and shared by every
// sphere that names them.
func Build(file *File) (*Scene, error) {
	cameraConfig := renderer.MergeCameraConfig(renderer.DefaultCameraConfig(), renderer.CameraConfig{
		AspectRatio:     file.Camera.AspectRatio,
		ImageWidth:      file.Camera.ImageWidth,
		SamplesPerPixel: file.Camera.SamplesPerPixel,
		VFov:            file.Camera.VFov,
		DefocusAngle:    file.Camera.DefocusAngle,
		FocusDist:       file.Camera.FocusDist,
	})
	if file.Camera.MaxDepth != nil {
		cameraConfig.MaxDepth = *file.Camera.MaxDepth
	}
	if file.Camera.LookFrom != nil {
		cameraConfig.LookFrom = file.Camera.LookFrom.Vec3()
	}
	if file.Camera.LookAt != nil {
		cameraConfig.LookAt = file.Camera.LookAt.Vec3()
	}
	if file.Camera.VUp != nil {
		cameraConfig.VUp = file.Camera.VUp.Vec3()
	}

	s := New(cameraConfig)
	if file.Background != nil {
		s.TopColor = file.Background.Top.Vec3()
		s.BottomColor = file.Background.Bottom.Vec3()
	}

	materials := make(map[string]material.Material, len(file.Materials))
	for name, mf := range file.Materials {
		mat, err := buildMaterial(mf)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, sf := range file.Spheres {
		mat, ok := materials[sf.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: %w %q", i, ErrUnknownMaterial, sf.Material)
		}
		if sf.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive, got %v", i, sf.Radius)
		}
		s.AddSphere(sf.Center.Vec3(), sf.Radius, mat)
	}

	logger.Debugf("built scene with %d materials and %d spheres", len(materials), len(s.Shapes))
	return s, nil
}

func buildMaterial(mf MaterialFile) (material.Material, error) {
	switch mf.Type {
	case MaterialLambertian:
		if mf.Albedo == nil {
			return nil, errors.New("lambertian material requires an albedo")
		}
		return material.NewLambertian(mf.Albedo.Vec3()), nil
	case MaterialMetal:
		if mf.Albedo == nil {
			return nil, errors.New("metal material requires an albedo")
		}
		return material.NewMetal(mf.Albedo.Vec3(), mf.Fuzz), nil
	case MaterialDielectric:
		if mf.RefractionIndex <= 0 {
			return nil, fmt.Errorf("dielectric refraction index must be positive, got %v", mf.RefractionIndex)
		}
		return material.NewDielectric(mf.RefractionIndex), nil
	default:
		return nil, fmt.Errorf("%w type %q", ErrUnknownMaterial, mf.Type)
	}
}

// Export converts a scene of spheres back into its file form. Materials shared between spheres
// are written once.
func Export(s *Scene) (*File, error) {
	cfg := s.CameraConfig
	lookFrom, lookAt, vup := VectorOf(cfg.LookFrom), VectorOf(cfg.LookAt), VectorOf(cfg.VUp)
	maxDepth := cfg.MaxDepth

	file := &File{
		Camera: CameraFile{
			AspectRatio:     cfg.AspectRatio,
			ImageWidth:      cfg.ImageWidth,
			SamplesPerPixel: cfg.SamplesPerPixel,
			MaxDepth:        &maxDepth,
			VFov:            cfg.VFov,
			LookFrom:        &lookFrom,
			LookAt:          &lookAt,
			VUp:             &vup,
			DefocusAngle:    cfg.DefocusAngle,
			FocusDist:       cfg.FocusDist,
		},
		Background: &BackgroundFile{
			Top:    VectorOf(s.TopColor),
			Bottom: VectorOf(s.BottomColor),
		},
		Materials: make(map[string]MaterialFile),
		Spheres:   make([]SphereFile, 0, len(s.Shapes)),
	}

	names := make(map[material.Material]string)
	for i, shape := range s.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			return nil, fmt.Errorf("shape %d: cannot export %T", i, shape)
		}

		name, seen := names[sphere.Material]
		if !seen {
			mf, err := exportMaterial(sphere.Material)
			if err != nil {
				return nil, fmt.Errorf("shape %d: %w", i, err)
			}
			name = fmt.Sprintf("%s-%d", mf.Type, len(names))
			names[sphere.Material] = name
			file.Materials[name] = mf
		}

		file.Spheres = append(file.Spheres, SphereFile{
			Center:   VectorOf(sphere.Center),
			Radius:   sphere.Radius,
			Material: name,
		})
	}

	return file, nil
}

func exportMaterial(mat material.Material) (MaterialFile, error) {
	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := VectorOf(m.Albedo)
		return MaterialFile{Type: MaterialLambertian, Albedo: &albedo}, nil
	case *material.Metal:
		albedo := VectorOf(m.Albedo)
		return MaterialFile{Type: MaterialMetal, Albedo: &albedo, Fuzz: m.Fuzzness}, nil
	case *material.Dielectric:
		return MaterialFile{Type: MaterialDielectric, RefractionIndex: m.RefractiveIndex}, nil
	default:
		return MaterialFile{}, fmt.Errorf("%w: cannot export %T", ErrUnknownMaterial, mat)
	}
}

// Encode writes file as indented JSON
func Encode(w io.Writer, file *File) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(file)
}

// Save writes file as indented JSON to path
func Save(path string, file *File) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scene file: %w", err)
	}

	if err := Encode(f, file); err != nil {
		f.Close()
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	return f.Close()
}
