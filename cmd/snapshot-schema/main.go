// Command snapshot-schema writes JSON schemas for the race wire protocol
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/lixenwraith/swimrace/engine"
	"github.com/lixenwraith/swimrace/network"
)

const (
	snapshotSchemaFile = "snapshot.schema.json"
	messageSchemaFile  = "client-message.schema.json"
)

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the JSON schemas into")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	if err := writeSchema(filepath.Join(outDir, snapshotSchemaFile), buildSnapshotSchema()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
	if err := writeSchema(filepath.Join(outDir, messageSchemaFile), buildMessageSchema()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSnapshotSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{}
	schema := reflector.Reflect(new(engine.Snapshot))
	schema.Title = "Swim Race Snapshot"
	schema.Description = "Per-frame race state streamed on /ws (msgpack or JSON) and served on /snapshot"
	return schema
}

func buildMessageSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{}
	schema := reflector.Reflect(new(network.ClientMessage))
	schema.Title = "Swim Race Client Message"
	schema.Description = "Messages a browser host sends on /ws: input, start, powerup"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
