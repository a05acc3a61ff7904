package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
	Geometry     map[string]interface{} `json:"geometry,omitempty"`
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vec3Array(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vec3Array(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vec3Array(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties
	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of pixel (x, y) and reports the nearest shape hit
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, x, y int) (material.HitRecord, geometry.Shape, bool) {
	center := camera.Center()
	ray := core.NewRay(center, camera.PixelCenter(x, y).Subtract(center))

	var rec material.HitRecord
	shape, hit := sceneObj.HitShape(ray, core.NewInterval(integrator.ShadowAcneEpsilon, math.Inf(1)), &rec)
	return rec, shape, hit
}

// handleInspect reports what the camera sees at one pixel of a scene
func (s *Server) handleInspect(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = DefaultScene
	}

	sceneObj, err := scene.Resolve(sceneName, s.sceneDir)
	if errors.Is(err, scene.ErrUnknownScene) {
		return jsonError(c, http.StatusNotFound, err.Error())
	}
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	config := sceneObj.CameraConfig
	width, _, err := parseIntParam(c, "width", config.ImageWidth, minWidth, maxWidth)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	config.ImageWidth = width

	camera, err := renderer.NewCamera(config)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	x, _, errX := parseIntParam(c, "x", 0, 0, camera.ImageWidth()-1)
	y, _, errY := parseIntParam(c, "y", 0, 0, camera.ImageHeight()-1)
	if err := errors.Join(errX, errY); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	rec, shape, hit := inspectPixel(sceneObj, camera, x, y)
	if !hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, properties := extractMaterialInfo(rec.Material)
	geometryType, geometryProps := extractGeometryInfo(shape)

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vec3Array(rec.Point),
		Normal:       vec3Array(rec.Normal),
		Distance:     rec.T,
		FrontFace:    rec.FrontFace,
		Properties:   properties,
		Geometry:     geometryProps,
	})
}

func vec3Array(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	channel := func(x float64) int {
		return int(math.Max(0, math.Min(1, x)) * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.X), channel(c.Y), channel(c.Z))
}
