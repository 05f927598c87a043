//go:build governance

package core_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/snowpark-explorer"

// TestGovernance_CoreTypesAreShared verifies that every type declared in
// pkg/core is used by at least one other package of the module.
// Run with: go test -tags governance ./pkg/core/
func TestGovernance_CoreTypesAreShared(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	corePath := modulePath + "/pkg/core"
	coreTypes := make(map[types.Object]string)
	for _, p := range pkgs {
		if p.PkgPath != corePath {
			continue
		}
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			if tn, ok := scope.Lookup(name).(*types.TypeName); ok && tn.Exported() {
				coreTypes[tn] = name
			}
		}
	}
	if len(coreTypes) == 0 {
		t.Fatal("Could not find pkg/core types")
	}

	users := make(map[string]map[string]bool)
	for _, p := range pkgs {
		if p.PkgPath == corePath || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if name, ok := coreTypes[obj]; ok {
				if users[name] == nil {
					users[name] = make(map[string]bool)
				}
				users[name][strings.TrimPrefix(p.PkgPath, modulePath+"/")] = true
			}
		}
	}

	for _, name := range coreTypes {
		if len(users[name]) == 0 {
			t.Errorf("UNUSED CORE TYPE: 'core.%s' is not used outside pkg/core.\n"+
				"   Fix: delete it or move it to the package that needs it.", name)
		}
	}
}
