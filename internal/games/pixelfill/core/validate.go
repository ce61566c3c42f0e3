package core

import (
	"fmt"
	"sort"
)

// Validation error codes.
const (
	CodeBadShape          = "BAD_SHAPE"
	CodeBadCapacity       = "BAD_CAPACITY"
	CodeUnknownColor      = "UNKNOWN_COLOR"
	CodeUnknownContainer  = "UNKNOWN_CONTAINER"
	CodeLayerMismatch     = "LAYER_MISMATCH"
	CodeUnknownDependency = "UNKNOWN_DEPENDENCY"
	CodeDependencyCycle   = "DEPENDENCY_CYCLE"
	CodeEmptyPicture      = "EMPTY_PICTURE"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate performs comprehensive validation of a level definition.
// Checks:
//   - Pixel and container maps are Size x Size
//   - Capacity is positive and the picture is not empty
//   - Every picture layer has a colour
//   - Every referenced container exists and matches its cells' layer
//   - Dependencies reference known containers and form a DAG
func (l *Level) Validate() error {
	if err := l.validateShape(); err != nil {
		return err
	}
	if l.Capacity < 1 {
		return ValidationError{
			Code:    CodeBadCapacity,
			Message: fmt.Sprintf("capacity must be at least 1, got %d", l.Capacity),
		}
	}
	if err := l.validateCells(); err != nil {
		return err
	}
	if l.TotalCells() == 0 {
		return ValidationError{Code: CodeEmptyPicture, Message: "picture has no fillable cells"}
	}
	_, err := NewContainerGraph(l)
	return err
}

// validateShape checks map dimensions.
func (l *Level) validateShape() error {
	if l.Size < 1 {
		return ValidationError{
			Code:    CodeBadShape,
			Message: fmt.Sprintf("size must be at least 1, got %d", l.Size),
		}
	}
	if len(l.PixelMap) != l.Size {
		return ValidationError{
			Code:    CodeBadShape,
			Message: fmt.Sprintf("pixel map has %d rows, want %d", len(l.PixelMap), l.Size),
		}
	}
	for r, row := range l.PixelMap {
		if len(row) != l.Size {
			return ValidationError{
				Code:    CodeBadShape,
				Message: fmt.Sprintf("pixel map row %d has %d cells, want %d", r, len(row), l.Size),
			}
		}
	}

	// A nil container map means every picture cell is ungated.
	if l.ContainerMap == nil {
		return nil
	}
	if len(l.ContainerMap) != l.Size {
		return ValidationError{
			Code:    CodeBadShape,
			Message: fmt.Sprintf("container map has %d rows, want %d", len(l.ContainerMap), l.Size),
		}
	}
	for r, row := range l.ContainerMap {
		if len(row) != l.Size {
			return ValidationError{
				Code:    CodeBadShape,
				Message: fmt.Sprintf("container map row %d has %d cells, want %d", r, len(row), l.Size),
			}
		}
	}
	return nil
}

// validateCells checks colours and container membership cell by cell.
func (l *Level) validateCells() error {
	defs := make(map[ContainerID]ContainerDef, len(l.Containers))
	for _, c := range l.Containers {
		defs[c.ID] = c
	}

	for r := 0; r < l.Size; r++ {
		for c := 0; c < l.Size; c++ {
			layer := l.PixelMap[r][c]
			if layer < 0 {
				return ValidationError{
					Code:    CodeUnknownColor,
					Message: fmt.Sprintf("cell %v has negative layer %d", C(r, c), layer),
				}
			}
			if layer > 0 {
				if _, ok := l.Colors[layer]; !ok {
					return ValidationError{
						Code:    CodeUnknownColor,
						Message: fmt.Sprintf("layer %d at %v has no colour", layer, C(r, c)),
					}
				}
			}

			id := l.containerAt(r, c)
			if id == 0 {
				continue
			}
			def, ok := defs[id]
			if !ok {
				return ValidationError{
					Code:    CodeUnknownContainer,
					Message: fmt.Sprintf("cell %v references undefined container %d", C(r, c), id),
				}
			}
			if def.Layer != layer {
				return ValidationError{
					Code: CodeLayerMismatch,
					Message: fmt.Sprintf("cell %v has layer %d but container %d (%s) is layer %d",
						C(r, c), layer, id, def.Name, def.Layer),
				}
			}
		}
	}

	// Deterministic error for dependency problems.
	ids := make([]ContainerID, 0, len(l.Deps))
	for id := range l.Deps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if _, ok := defs[id]; !ok {
			return ValidationError{
				Code:    CodeUnknownContainer,
				Message: fmt.Sprintf("dependencies declared for undefined container %d", id),
			}
		}
		for _, dep := range l.Deps[id] {
			if _, ok := defs[dep]; !ok {
				return ValidationError{
					Code:    CodeUnknownDependency,
					Message: fmt.Sprintf("container %d depends on undefined container %d", id, dep),
				}
			}
		}
	}
	return nil
}
