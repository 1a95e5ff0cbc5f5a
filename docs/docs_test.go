package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/swaggo/swag"
)

var (
	descriptionRe = regexp.MustCompile(`(?m)^// @Description\s+(.+)$`)
	routerRe      = regexp.MustCompile(`(?m)^// @Router\s+(\S+)\s+\[(\w+)\]$`)
)

type operation struct {
	Description string `json:"description"`
}

type swaggerDoc struct {
	BasePath string                          `json:"basePath"`
	Paths    map[string]map[string]operation `json:"paths"`
}

// Every annotated handler must appear in the served document with the same
// description it carries in source.
func TestDocMatchesHandlerAnnotations(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	var doc swaggerDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}
	if doc.BasePath != "/api/v1" {
		t.Fatalf("basePath = %q", doc.BasePath)
	}

	files, err := filepath.Glob("../internal/delivery/http/handlers/*_handler.go")
	if err != nil || len(files) == 0 {
		t.Fatalf("handler sources not found: %v", err)
	}

	routes := 0
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			t.Fatal(err)
		}
		descs := descriptionRe.FindAllStringSubmatch(string(src), -1)
		routers := routerRe.FindAllStringSubmatch(string(src), -1)
		if len(descs) != len(routers) {
			t.Fatalf("%s: %d descriptions for %d routes", f, len(descs), len(routers))
		}
		for i, r := range routers {
			path, method := r[1], strings.ToLower(r[2])
			op, ok := doc.Paths[path][method]
			if !ok {
				t.Errorf("%s %s missing from doc", method, path)
				continue
			}
			if want := strings.TrimSpace(descs[i][1]); op.Description != want {
				t.Errorf("%s %s description = %q, want %q", method, path, op.Description, want)
			}
			routes++
		}
	}
	if routes != len(doc.Paths) {
		t.Errorf("doc has %d paths, handlers annotate %d", len(doc.Paths), routes)
	}
}
