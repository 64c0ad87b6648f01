package task

import "errors"

// Builtin returns the stock catalog of layout tasks shipped with the
// worker's script bundle. Default payloads mirror what each script
// falls back to when driven interactively.
func Builtin() []Spec {
	return []Spec{
		{
			ID:             "layout.create",
			Name:           "Create Layout",
			Description:    "Create a fresh layout with demo rectangles and export it",
			Script:         "scripts/create_layout.py",
			DefaultPayload: `{"task_id": "default"}`,
		},
		{
			ID:             "layout.read",
			Name:           "Read Layout",
			Description:    "Read a layout file and dump its shapes to CSV",
			Script:         "scripts/read_layout.py",
			DefaultPayload: `{"input_file": "out.gds", "output_file": "layout_shape.csv"}`,
		},
		{
			ID:             "layout.import",
			Name:           "Import Layout",
			Description:    "Import a layout file and report its cell summary",
			Script:         "scripts/import_layout.py",
			DefaultPayload: `{"input_file": "out.gds"}`,
		},
		{
			ID:             "shapes.extract",
			Name:           "Extract Shapes",
			Description:    "Extract per-cell shape records from a layout",
			Script:         "scripts/extract_shapes_from_layout.py",
			DefaultPayload: `{"input_file": "out.gds"}`,
		},
		{
			ID:          "shapes.merge",
			Name:        "Merge Shapes",
			Description: "Merge overlapping shapes on the selected layers",
			Script:      "scripts/merge_shapes.py",
		},
		{
			ID:          "cell.array-add",
			Name:        "Add Cell Array",
			Description: "Instantiate a cell as a regular array in a parent cell",
			Script:      "scripts/add_cell_array.py",
		},
		{
			ID:             "cell.hierarchy",
			Name:           "Cell Hierarchy",
			Description:    "Report the cell instantiation hierarchy of a layout",
			Script:         "scripts/cell_hierarchy.py",
			DefaultPayload: `{"input_file": "out.gds"}`,
		},
		{
			ID:          "cell.bbox",
			Name:        "Draw Cell Bounding Box",
			Description: "Draw the bounding box of a cell onto a marker layer",
			Script:      "scripts/draw_cell_bbox.py",
		},
		{
			ID:          "array.pitch",
			Name:        "Analyze Array Pitch",
			Description: "Measure instance-array pitch in a layout",
			Script:      "scripts/analyze_array_pitch.py",
		},
		{
			ID:          "gds.from-csv",
			Name:        "Generate GDS From CSV",
			Description: "Build a layout from a CSV shape table",
			Script:      "scripts/generate_gds_from_csv.py",
		},
	}
}

// RegisterBuiltin adds the stock catalog to a registry, skipping ids the
// registry already holds so config-defined tasks win.
func RegisterBuiltin(r *Registry) error {
	for _, spec := range Builtin() {
		if err := r.Register(spec); err != nil {
			if errors.Is(err, ErrTaskExists) {
				continue
			}
			return err
		}
	}
	return nil
}
