package collections

import (
	_ "embed"
	"fmt"
	"log"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
)

//go:embed seeddata/employee_functions.toml
var defaultFunctionsTOML []byte

// FunctionDef is one [[function]] entry of a catalog file.
type FunctionDef struct {
	Name string  `toml:"name"`
	Cost float64 `toml:"cost"`
}

type catalogFile struct {
	Functions []FunctionDef `toml:"function"`
}

// ParseFunctionCatalog decodes a TOML catalog. Entries without a name or
// with a negative cost are rejected.
func ParseFunctionCatalog(data []byte) ([]FunctionDef, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing function catalog: %w", err)
	}
	for i, def := range file.Functions {
		if strings.TrimSpace(def.Name) == "" {
			return nil, fmt.Errorf("function #%d: name is required", i+1)
		}
		if def.Cost < 0 {
			return nil, fmt.Errorf("function %q: cost must not be negative", def.Name)
		}
	}
	return file.Functions, nil
}

// ImportFunctions upserts defs by name: existing functions get the new cost,
// missing ones are created.
func ImportFunctions(app core.App, defs []FunctionDef) (created, updated int, err error) {
	col, err := app.FindCollectionByNameOrId(services.CollectionFunctions)
	if err != nil {
		return 0, 0, fmt.Errorf("import: could not find %s collection: %w", services.CollectionFunctions, err)
	}

	for _, def := range defs {
		name := strings.TrimSpace(def.Name)
		existing, err := app.FindRecordsByFilter(col, "name = {:name}", "", 1, 0, map[string]any{"name": name})
		if err != nil {
			return created, updated, fmt.Errorf("import: could not look up function %q: %w", name, err)
		}

		var rec *core.Record
		if len(existing) > 0 {
			rec = existing[0]
			if rec.GetFloat("cost") == def.Cost {
				continue
			}
			updated++
		} else {
			rec = core.NewRecord(col)
			rec.Set("name", name)
			created++
		}
		rec.Set("cost", def.Cost)

		if err := app.Save(rec); err != nil {
			return created, updated, fmt.Errorf("import: could not save function %q: %w", name, err)
		}
	}
	return created, updated, nil
}

// Seed fills the function catalog from the embedded defaults. It is safe to
// call on every startup because it returns early once any function exists.
func Seed(app core.App) error {
	existing, err := app.FindAllRecords(services.CollectionFunctions)
	if err != nil {
		return fmt.Errorf("seed: could not query %s: %w", services.CollectionFunctions, err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	defs, err := ParseFunctionCatalog(defaultFunctionsTOML)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	log.Println("seed: employee_functions collection is empty – inserting default catalog …")
	created, _, err := ImportFunctions(app, defs)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	log.Printf("seed: created %d employee function(s)", created)
	return nil
}
