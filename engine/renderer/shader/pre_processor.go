// pre_processor.go implements the Oxy WGSL shader pre-processor. It scans shader
// source for @oxy: annotations, replaces them with injected struct source or
// generated @group/@binding declarations, and records the group declarations for
// the Scene's provider wiring.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-planet/engine/camera"
	"github.com/Carmen-Shannon/oxy-planet/engine/light"
	"github.com/Carmen-Shannon/oxy-planet/engine/model"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
)

// registryEntry pairs an embedded WGSL struct definition with the type name emitted
// in generated declarations.
type registryEntry struct {
	// Source is the raw WGSL struct definition text injected by @oxy:include.
	Source string

	// Type is the WGSL type name emitted in @oxy:group declarations (e.g. "CameraUniform").
	Type string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations accumulates group annotations during a Process call.
	declarations []Annotation
}

// PreProcessor expands @oxy: annotations in WGSL source and collects group declarations.
type PreProcessor interface {
	// Process expands every annotation in source. Include annotations are replaced with the
	// registered struct source. Group annotations are replaced with a @group/@binding
	// declaration and recorded. The declarations list is reset on every call.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code
	//
	// Returns:
	//   - string: the expanded WGSL source
	//   - error: an error if any annotation is malformed or references an unknown type
	Process(source string) (string, error)

	// Declarations returns the group annotations collected by the most recent Process call,
	// in source order.
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with every engine GPU struct registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:        {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			annotationArgVertex:        {Source: model.GPUVertexSource, Type: "VertexInput"},
			annotationArgQuadVertex:    {Source: model.GPUQuadVertexSource, Type: "QuadVertexInput"},
			annotationArgPointInstance: {Source: model.GPUPointInstanceSource, Type: "PointInstance"},
			AnnotationArgSurfaceParams: {Source: material.GPUSurfaceParamsSource, Type: "SurfaceParams"},
			AnnotationArgStarParams:    {Source: material.GPUStarParamsSource, Type: "StarParams"},
			AnnotationArgLightBlock:    {Source: light.GPULightBlockSource, Type: "LightBlock"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", i+1, a.Args[0])
			}
			out = append(out, entry.Source)
		case AnnotationTypeBindingGroup:
			entry, ok := p.structRegistry[a.StructType()]
			if !ok {
				return "", fmt.Errorf("line %d: unregistered struct type %q", i+1, a.StructType())
			}
			wgslType := entry.Type
			if strings.HasPrefix(string(a.Args[2]), "array<") {
				wgslType = fmt.Sprintf("array<%s>", entry.Type)
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, p.addressSpaceRegistry[a.Args[0]], a.Args[1], wgslType))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
