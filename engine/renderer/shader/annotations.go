// annotations.go defines the annotation types, argument constants, and parser for the
// Oxy WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed
// with @oxy: that drive struct injection and bind group declaration. The parsed
// results are stored as Annotation values and consumed by the PreProcessor and the
// Scene, which maps every declared group onto the resource provider that owns it.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition
	// at the annotation site. It produces no declaration.
	//
	// Syntax: //@oxy:include <struct_type>
	//
	// Example: //@oxy:include surface_params
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and records an Annotation in the declarations list. The declaration carries the
	// group index, binding index and struct type so the Scene can pick the owning
	// provider without looking at variable names.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@oxy:group 0 0 storage_uniform camera camera
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// Annotation represents a single parsed @oxy: annotation from a WGSL shader source line.
type Annotation struct {
	// Type identifies which annotation was parsed (include or group).
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include: [0] = struct type key (e.g. "camera")
	//   - group:   [0] = address space, [1] = var name, [2] = struct type key
	Args []AnnotationArg

	// Line is the 1-based line number in the original WGSL source, used for error reporting.
	Line int

	// Group is the @group index for group annotations. Nil for include annotations.
	Group *int

	// Binding is the @binding index for group annotations. Nil for include annotations.
	Binding *int
}

// StructType returns the struct type key of a group annotation with any array<> wrapper removed.
// Returns an empty AnnotationArg for include annotations.
func (a Annotation) StructType() AnnotationArg {
	if a.Type != AnnotationTypeBindingGroup || len(a.Args) < 3 {
		return ""
	}
	typeArg := string(a.Args[2])
	if inner, ok := strings.CutPrefix(typeArg, "array<"); ok {
		typeArg = strings.TrimSuffix(inner, ">")
	}
	return AnnotationArg(typeArg)
}

// AnnotationArg is a typed string constant used as an argument in annotations.
type AnnotationArg string

// ── Struct type arguments ──────────────────────────────────────────────────────
// Each maps to a Go GPU type with an embedded .wgsl asset file.

const (
	// AnnotationArgCamera identifies the CameraUniform struct.
	// Source: engine/camera/assets/camera_uniform.wgsl
	AnnotationArgCamera AnnotationArg = "camera"

	// annotationArgVertex identifies the VertexInput struct for lit meshes (position, normal, uv).
	// Source: engine/model/assets/vertex.wgsl
	annotationArgVertex AnnotationArg = "vertex"

	// annotationArgQuadVertex identifies the QuadVertexInput struct holding a billboard corner.
	// Source: engine/model/assets/quad_vertex.wgsl
	annotationArgQuadVertex AnnotationArg = "quad_vertex"

	// annotationArgPointInstance identifies the PointInstance struct, stepped per instance.
	// Source: engine/model/assets/point_instance.wgsl
	annotationArgPointInstance AnnotationArg = "point_instance"

	// AnnotationArgSurfaceParams identifies the SurfaceParams material struct for the water surface.
	// Source: engine/renderer/material/assets/surface_params.wgsl
	AnnotationArgSurfaceParams AnnotationArg = "surface_params"

	// AnnotationArgStarParams identifies the StarParams material struct for the star field.
	// Source: engine/renderer/material/assets/star_params.wgsl
	AnnotationArgStarParams AnnotationArg = "star_params"

	// AnnotationArgLightBlock identifies the LightBlock struct (ambient color plus directional lights).
	// Source: engine/light/assets/light_block.wgsl
	AnnotationArgLightBlock AnnotationArg = "light_block"
)

// ── Address space arguments ────────────────────────────────────────────────────

const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"
)

// ── Provider identities ────────────────────────────────────────────────────────
// A provider identity names the Scene-level owner of a bind group. Every struct
// type that may appear in a group annotation resolves to exactly one provider.

// Provider identifies which resource provider owns a bind group.
type Provider string

const (
	// ProviderCamera is the camera's view/projection uniform.
	ProviderCamera Provider = "camera"

	// ProviderMaterial is the per-object material uniform.
	ProviderMaterial Provider = "material"

	// ProviderLights is the scene-wide light block.
	ProviderLights Provider = "lights"
)

// validStructTypes lists all AnnotationArg values that are accepted as struct type
// arguments in @oxy:include and @oxy:group annotations.
var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	annotationArgVertex,
	annotationArgQuadVertex,
	annotationArgPointInstance,
	AnnotationArgSurfaceParams,
	AnnotationArgStarParams,
	AnnotationArgLightBlock,
}

// validAddressSpaces lists all AnnotationArg values that are accepted as address
// space arguments in @oxy:group annotations.
var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
}

// structProviders maps bindable struct types to the provider that owns them.
// Vertex input structs are absent because they never appear in a bind group.
var structProviders = map[AnnotationArg]Provider{
	AnnotationArgCamera:        ProviderCamera,
	AnnotationArgSurfaceParams: ProviderMaterial,
	AnnotationArgStarParams:    ProviderMaterial,
	AnnotationArgLightBlock:    ProviderLights,
}

// ProviderOf resolves the provider identity for a group declaration.
//
// Parameters:
//   - a: a group annotation returned by Shader.Declarations
//
// Returns:
//   - Provider: the owning provider
//   - bool: false if the annotation is not a group declaration or its type has no provider
func ProviderOf(a Annotation) (Provider, bool) {
	p, ok := structProviders[a.StructType()]
	return p, ok
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	_, after, ok := strings.Cut(strings.TrimSpace(line), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case annotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group annotation requires group, binding, address space, var name and struct type", lineNum)
		}
		group, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q: %w", lineNum, args[1], err)
		}
		binding, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q: %w", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @oxy group annotation", lineNum, args[3])
		}
		a := &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}
		if !slices.Contains(validStructTypes, a.StructType()) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy group annotation", lineNum, args[5])
		}
		return a, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}
