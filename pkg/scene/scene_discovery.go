package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

const (
	builtInGroup   = "Built-in Scenes"
	sceneFileGroup = "Scene Files"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to JSON scene file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type builtInScene struct {
	info   SceneInfo
	create func(cameraOverrides ...renderer.CameraConfig) *Scene
}

var builtInScenes = []builtInScene{
	{
		info: SceneInfo{
			ID:          "final",
			Name:        "Final Scene",
			DisplayName: "Final Scene",
			Description: "Random field of small spheres around three large ones",
			Group:       builtInGroup,
			Type:        "builtin",
		},
		create: NewFinalScene,
	},
	{
		info: SceneInfo{
			ID:          "three-spheres",
			Name:        "Three Spheres",
			DisplayName: "Three Spheres",
			Description: "Hollow glass, diffuse and fuzzy metal spheres on a ground sphere",
			Group:       builtInGroup,
			Type:        "builtin",
		},
		create: NewThreeSpheresScene,
	},
	{
		info: SceneInfo{
			ID:          "defocus",
			Name:        "Defocus Blur",
			DisplayName: "Defocus Blur",
			Description: "Three spheres seen through a wide aperture lens",
			Group:       builtInGroup,
			Type:        "builtin",
		},
		create: NewDefocusScene,
	},
}

// List returns the built-in scenes in registration order
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtInScenes))
	for _, s := range builtInScenes {
		infos = append(infos, s.info)
	}
	return infos
}

// Create builds the built-in scene with the given id, applying optional camera overrides
func Create(id string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, s := range builtInScenes {
		if s.info.ID == id {
			logger.Infof("building scene %q", id)
			return s.create(cameraOverrides...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// Resolve builds the scene named by id: a built-in id, or "file:<name>" for <name>.json in dir.
// Camera overrides are applied on top of the scene's own camera.
func Resolve(id, dir string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	name, isFile := strings.CutPrefix(id, "file:")
	if !isFile {
		return Create(id, cameraOverrides...)
	}

	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	path := filepath.Join(dir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}

	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	for _, override := range cameraOverrides {
		s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, override)
	}
	return s, nil
}

// ListSceneFiles scans dir for JSON scene files. A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneFileMetadata(filePath)
		if err != nil {
			// Skip broken files but keep listing the rest
			logger.Warningf("failed to parse metadata for %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneFileMetadata reads the name, description and group of a JSON scene file
func ParseSceneFileMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	// Fallback values from the filename
	sceneInfo := SceneInfo{
		ID:          "file:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       sceneFileGroup,
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return sceneInfo, fmt.Errorf("malformed scene file: %w", err)
	}

	if header.Name != "" {
		sceneInfo.Name = header.Name
		sceneInfo.DisplayName = header.Name
	}
	sceneInfo.Description = header.Description
	if header.Group != "" {
		sceneInfo.Group = header.Group
	}

	return sceneInfo, nil
}

// ListAllScenes returns both built-in scenes and scene files in dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(List(), fileScenes...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtInGroup,
			Scenes: group,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-row" -> "Glass Row"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
